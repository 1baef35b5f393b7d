package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/opd-ai/toxpacket/result"
)

// BitStream is an immutable read cursor over a byte slice. The position is
// counted in bits; reads of whole bytes or integers require byte alignment.
type BitStream struct {
	data []byte
	pos  int
}

// NewBitStream starts a cursor at the beginning of data.
func NewBitStream(data []byte) BitStream {
	return BitStream{data: data}
}

// SupportedWidth reports whether ReadUint accepts width.
func SupportedWidth(width int) bool {
	switch width {
	case 1, 7, 8, 16, 32, 64:
		return true
	}
	return false
}

// Position returns the number of bits consumed.
func (s BitStream) Position() int {
	return s.pos
}

// Aligned reports whether the cursor sits on a byte boundary.
func (s BitStream) Aligned() bool {
	return s.pos%8 == 0
}

// Remaining returns the number of unread bits.
func (s BitStream) Remaining() int {
	return len(s.data)*8 - s.pos
}

// AtEnd reports whether every bit has been consumed.
func (s BitStream) AtEnd() bool {
	return s.Remaining() == 0
}

// ReadUint reads an unsigned integer of the given bit width. Only the widths
// used by format descriptions are supported: 1 and 7 for sub-byte fields and
// 8, 16, 32 or 64 for aligned integers. Any other width, or an aligned read
// from a misaligned cursor, is a bug in the format description and panics.
// Running out of input is reported as a Truncated error.
func (s BitStream) ReadUint(width int) (uint64, BitStream, error) {
	if !SupportedWidth(width) {
		panic(fmt.Sprintf("wire: unsupported bit width %d", width))
	}
	if s.Remaining() < width {
		return 0, s, result.Errorf(result.Truncated, "need %d bits, have %d", width, s.Remaining())
	}

	if width < 8 {
		return s.readBits(width)
	}

	s.mustAlign(width)
	off := s.pos / 8
	var v uint64
	switch width {
	case 8:
		v = uint64(s.data[off])
	case 16:
		v = uint64(binary.BigEndian.Uint16(s.data[off:]))
	case 32:
		v = uint64(binary.BigEndian.Uint32(s.data[off:]))
	case 64:
		v = binary.BigEndian.Uint64(s.data[off:])
	}
	return v, BitStream{data: s.data, pos: s.pos + width}, nil
}

// readBits reads the most significant unread bits first.
func (s BitStream) readBits(width int) (uint64, BitStream, error) {
	var v uint64
	pos := s.pos
	for i := 0; i < width; i++ {
		bit := (s.data[pos/8] >> (7 - uint(pos%8))) & 1
		v = v<<1 | uint64(bit)
		pos++
	}
	return v, BitStream{data: s.data, pos: pos}, nil
}

// ReadBytes reads a fixed-size byte array. The returned slice is a copy.
func (s BitStream) ReadBytes(n int) ([]byte, BitStream, error) {
	if n < 0 {
		panic(fmt.Sprintf("wire: negative read length %d", n))
	}
	if s.Remaining() < n*8 {
		return nil, s, result.Errorf(result.Truncated, "need %d bytes, have %d", n, s.Remaining()/8)
	}
	s.mustAlign(n * 8)
	off := s.pos / 8
	out := make([]byte, n)
	copy(out, s.data[off:off+n])
	return out, BitStream{data: s.data, pos: s.pos + n*8}, nil
}

// Rest returns every unread byte and a stream positioned at the end.
func (s BitStream) Rest() ([]byte, BitStream) {
	s.mustAlign(s.Remaining())
	rest := s.data[s.pos/8:]
	return rest, BitStream{data: s.data, pos: len(s.data) * 8}
}

func (s BitStream) mustAlign(width int) {
	if !s.Aligned() {
		panic(fmt.Sprintf("wire: %d-bit read at unaligned bit position %d", width, s.pos))
	}
}
