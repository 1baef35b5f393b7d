package codec

import "github.com/opd-ai/toxpacket/wire"

// Packet is a serialised message of format F. It is built once and never
// modified.
type Packet[F any] struct {
	text wire.CipherText[F]
}

// NewPacket encodes rec into a packet.
func NewPacket[F any](f *Format[F], rec Record, keys KeyResolver) (Packet[F], error) {
	ct, err := Encode(f, rec, keys)
	if err != nil {
		return Packet[F]{}, err
	}
	return Packet[F]{text: ct}, nil
}

// Bytes returns a copy of the wire bytes.
func (p Packet[F]) Bytes() []byte {
	return append([]byte(nil), p.text.Bytes()...)
}

// CipherText returns the typed wire form for handing to Decode.
func (p Packet[F]) CipherText() wire.CipherText[F] {
	return p.text
}

// Len returns the packet size in bytes.
func (p Packet[F]) Len() int {
	return p.text.Len()
}
