package codec

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opd-ai/toxpacket/result"
)

// Label names and values for codec metrics.
const (
	LabelFormat        = "format"
	LabelStatus        = "status"
	LabelStatusSuccess = "success"
)

var (
	// EncodeCounter counts Encode calls by format and outcome.
	EncodeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toxpacket_codec_encode_total",
			Help: "number of packet encodings by format and status",
		}, []string{LabelFormat, LabelStatus})

	// DecodeCounter counts Decode calls by format and outcome. The status
	// label is the result.StatusCode name for failures.
	DecodeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toxpacket_codec_decode_total",
			Help: "number of packet decodings by format and status",
		}, []string{LabelFormat, LabelStatus})
)

// RegisterMetrics registers the codec counters with reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{EncodeCounter, DecodeCounter} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func statusLabel(err error) string {
	if err == nil {
		return LabelStatusSuccess
	}
	return result.CodeOf(err).String()
}

func observeEncode(format string, err error) {
	EncodeCounter.WithLabelValues(format, statusLabel(err)).Inc()
}

func observeDecode(format string, err error) {
	DecodeCounter.WithLabelValues(format, statusLabel(err)).Inc()
}
