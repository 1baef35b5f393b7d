// Package wire holds the byte containers and the read cursor used by the
// packet codec.
//
// PlainText and CipherText are distinct generic types parameterised by a
// format marker, so the compiler rejects passing an unencrypted buffer where
// ciphertext is expected, or the bytes of one packet format to the decoder of
// another. Conversion between the two only happens in crypto.Seal and
// crypto.Open.
//
// BitStream is a value type. Every read returns a new stream and leaves the
// receiver untouched, so a caller holding an earlier position never observes
// a half-finished read.
package wire
