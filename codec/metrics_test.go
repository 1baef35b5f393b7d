package codec

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/toxpacket/wire"
)

func TestDecodeMetricsByStatus(t *testing.T) {
	success := DecodeCounter.WithLabelValues(addressFormat.Name(), LabelStatusSuccess)
	formatErr := DecodeCounter.WithLabelValues(addressFormat.Name(), "format_error")
	truncated := DecodeCounter.WithLabelValues(addressFormat.Name(), "truncated")

	beforeSuccess := testutil.ToFloat64(success)
	beforeFormat := testutil.ToFloat64(formatErr)
	beforeTruncated := testutil.ToFloat64(truncated)

	Decode(addressFormat, wire.NewCipherText[addressTag]([]byte{0x02, 1, 2, 3, 4, 0, 1}), Options{})
	Decode(addressFormat, wire.NewCipherText[addressTag]([]byte{0x7f, 1, 2, 3, 4, 0, 1}), Options{})
	Decode(addressFormat, wire.NewCipherText[addressTag]([]byte{0x02, 1}), Options{})

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeFormat+1, testutil.ToFloat64(formatErr))
	assert.Equal(t, beforeTruncated+1, testutil.ToFloat64(truncated))
}

func TestDecodeMetricsCountSizeRejections(t *testing.T) {
	formatErr := DecodeCounter.WithLabelValues(addressFormat.Name(), "format_error")
	truncated := DecodeCounter.WithLabelValues(addressFormat.Name(), "truncated")
	beforeFormat := testutil.ToFloat64(formatErr)
	beforeTruncated := testutil.ToFloat64(truncated)

	opts := Options{MinSize: 3, MaxSize: 19}
	Decode(addressFormat, wire.NewCipherText[addressTag](nil), opts)
	Decode(addressFormat, wire.NewCipherText[addressTag]([]byte{0x02, 1}), opts)
	Decode(addressFormat, wire.NewCipherText[addressTag](make([]byte, 20)), opts)

	assert.Equal(t, beforeTruncated+2, testutil.ToFloat64(truncated))
	assert.Equal(t, beforeFormat+1, testutil.ToFloat64(formatErr))
}

func TestEncodeMetrics(t *testing.T) {
	failure := EncodeCounter.WithLabelValues(listFormat.Name(), "failure")
	before := testutil.ToFloat64(failure)

	_, err := EncodePlain(listFormat, Record{uint64(1)}, nil)
	assert.Error(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(failure))
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, RegisterMetrics(reg))
	require.NoError(t, RegisterMetrics(reg), "registering twice is harmless")

	EncodeCounter.WithLabelValues("registered", LabelStatusSuccess).Inc()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "toxpacket_codec_encode_total")
}
