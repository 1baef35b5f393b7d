package packet

import (
	"github.com/opd-ai/toxpacket/codec"
	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/result"
	"github.com/opd-ai/toxpacket/wire"
)

type (
	echoRequestTag  struct{}
	echoResponseTag struct{}
)

// EchoSize is the fixed wire size of echo requests and responses.
const EchoSize = crypto.KeySize + crypto.NonceSize + 1 + 8 + crypto.Overhead

var (
	echoRequestPayload  = []codec.Element{codec.Tag8(KindEchoRequest), codec.Uint64("ping_id")}
	echoResponsePayload = []codec.Element{codec.Tag8(KindEchoResponse), codec.Uint64("ping_id")}
)

// EchoRequestFormat is [sender][nonce][sealed{0x00, ping_id}].
var EchoRequestFormat = codec.MustNew[echoRequestTag]("echo_request", envelope(echoRequestPayload...)...)

// EchoResponseFormat is [sender][nonce][sealed{0x01, ping_id}].
var EchoResponseFormat = codec.MustNew[echoResponseTag]("echo_response", envelope(echoResponsePayload...)...)

// EchoRequest asks a peer to echo PingID back.
type EchoRequest struct {
	Sender crypto.PublicKey
	Nonce  crypto.Nonce
	PingID uint64
}

// EchoResponse answers an EchoRequest with the same PingID.
type EchoResponse struct {
	Sender crypto.PublicKey
	Nonce  crypto.Nonce
	PingID uint64
}

// NewEchoRequest builds a request from sender, nonce and ping id.
func NewEchoRequest(sender crypto.PublicKey, nonce crypto.Nonce, pingID uint64) EchoRequest {
	return EchoRequest{Sender: sender, Nonce: nonce, PingID: pingID}
}

// NewEchoResponse builds a response from sender, nonce and ping id.
func NewEchoResponse(sender crypto.PublicKey, nonce crypto.Nonce, pingID uint64) EchoResponse {
	return EchoResponse{Sender: sender, Nonce: nonce, PingID: pingID}
}

// Kind implements Message.
func (EchoRequest) Kind() byte { return KindEchoRequest }

// Kind implements Message.
func (EchoResponse) Kind() byte { return KindEchoResponse }

// Header implements Message.
func (m EchoRequest) Header() Header { return Header{Sender: m.Sender, Nonce: m.Nonce} }

// Header implements Message.
func (m EchoResponse) Header() Header { return Header{Sender: m.Sender, Nonce: m.Nonce} }

// Encode seals the request with the box shared with the recipient.
func (m EchoRequest) Encode(box *crypto.CryptoBox) (codec.Packet[echoRequestTag], error) {
	return codec.NewPacket(EchoRequestFormat, m.Header().record(m.PingID), sealWith(box))
}

// Encode seals the response with the box shared with the recipient.
func (m EchoResponse) Encode(box *crypto.CryptoBox) (codec.Packet[echoResponseTag], error) {
	return codec.NewPacket(EchoResponseFormat, m.Header().record(m.PingID), sealWith(box))
}

// DecodeEchoRequest opens and parses an echo request.
func DecodeEchoRequest(data []byte, keys Keyring) result.Partial[EchoRequest] {
	rec := codec.Decode(EchoRequestFormat, wire.NewCipherText[echoRequestTag](data), openOptions(keys))
	return result.Map(rec, echoRequestFromRecord)
}

// DecodeEchoResponse opens and parses an echo response.
func DecodeEchoResponse(data []byte, keys Keyring) result.Partial[EchoResponse] {
	rec := codec.Decode(EchoResponseFormat, wire.NewCipherText[echoResponseTag](data), openOptions(keys))
	return result.Map(rec, echoResponseFromRecord)
}

func echoRequestFromRecord(rec codec.Record) EchoRequest {
	h := headerFromRecord(rec)
	return EchoRequest{Sender: h.Sender, Nonce: h.Nonce, PingID: rec.Uint(2)}
}

func echoResponseFromRecord(rec codec.Record) EchoResponse {
	h := headerFromRecord(rec)
	return EchoResponse{Sender: h.Sender, Nonce: h.Nonce, PingID: rec.Uint(2)}
}
