package packet

import (
	"github.com/opd-ai/toxpacket/codec"
	"github.com/opd-ai/toxpacket/result"
	"github.com/opd-ai/toxpacket/wire"
)

type anyTag struct{}

// AnyFormat accepts every known kind. The kind byte is only visible after
// decryption, so dispatch happens on the opened payload.
var AnyFormat = codec.MustNew[anyTag]("any", envelope(
	codec.OneOf("payload",
		codec.Alt("echo_request", echoRequestPayload...),
		codec.Alt("echo_response", echoResponsePayload...),
		codec.Alt("nodes_request", nodesRequestPayload...),
		codec.Alt("nodes_response", nodesResponsePayload...),
	),
)...)

// payloadIndex is the record position of the opened payload in AnyFormat.
const payloadIndex = 2

// fromRecord builds a Message from the flattened record of one kind.
var fromRecord = []func(codec.Record) Message{
	func(rec codec.Record) Message { return echoRequestFromRecord(rec) },
	func(rec codec.Record) Message { return echoResponseFromRecord(rec) },
	func(rec codec.Record) Message { return nodesRequestFromRecord(rec) },
	func(rec codec.Record) Message { return nodesResponseFromRecord(rec) },
}

// Decode opens a packet of any known kind. An unknown kind byte fails with
// result.FormatError.
func Decode(data []byte, keys Keyring) result.Partial[Message] {
	rec := codec.Decode(AnyFormat, wire.NewCipherText[anyTag](data), openOptions(keys))
	return result.Map(rec, func(rec codec.Record) Message {
		v := rec.Variant(payloadIndex)
		flat := append(codec.Record{rec[senderIndex], rec[nonceIndex]}, v.Fields...)
		return fromRecord[v.Index](flat)
	})
}

// Inspect opens a packet of any known kind and returns its fields by name,
// in wire order.
func Inspect(data []byte, keys Keyring) result.Partial[[]codec.NamedValue] {
	rec := codec.Decode(AnyFormat, wire.NewCipherText[anyTag](data), openOptions(keys))
	return result.Bind(rec, func(rec codec.Record) result.Partial[[]codec.NamedValue] {
		return result.From(codec.Describe(AnyFormat, rec))
	})
}
