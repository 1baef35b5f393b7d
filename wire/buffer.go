package wire

import "encoding/binary"

// Buffer is an append-only byte sequence. Multi-byte integers are written
// big-endian.
type Buffer struct {
	data []byte
}

// NewBuffer returns a buffer with room for capacity bytes.
func NewBuffer(capacity int) Buffer {
	return Buffer{data: make([]byte, 0, capacity)}
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(v byte) {
	b.data = append(b.data, v)
}

// AppendUint16 appends v in network byte order.
func (b *Buffer) AppendUint16(v uint16) {
	b.data = binary.BigEndian.AppendUint16(b.data, v)
}

// AppendUint32 appends v in network byte order.
func (b *Buffer) AppendUint32(v uint32) {
	b.data = binary.BigEndian.AppendUint32(b.data, v)
}

// AppendUint64 appends v in network byte order.
func (b *Buffer) AppendUint64(v uint64) {
	b.data = binary.BigEndian.AppendUint64(b.data, v)
}

// Append appends a sub-buffer.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Bytes returns the buffer contents. The slice must not be modified.
func (b Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes written so far.
func (b Buffer) Len() int {
	return len(b.data)
}

// Stream returns a BitStream positioned at the start of the buffer.
func (b Buffer) Stream() BitStream {
	return NewBitStream(b.data)
}

// PlainText is unencrypted message content for format F.
type PlainText[F any] struct {
	Buffer
}

// NewPlainText wraps data as plaintext of format F without copying.
func NewPlainText[F any](data []byte) PlainText[F] {
	return PlainText[F]{Buffer{data: data}}
}

// CipherText is the on-the-wire form of format F, possibly containing an
// authenticated-encrypted region.
type CipherText[F any] struct {
	Buffer
}

// NewCipherText wraps data as ciphertext of format F without copying.
func NewCipherText[F any](data []byte) CipherText[F] {
	return CipherText[F]{Buffer{data: data}}
}
