// Package codec turns declarative packet layouts into wire bytes and back.
//
// A layout is a flat list of elements:
//
//   - Literal: a constant tag that must match exactly when decoding.
//   - Field: an unsigned integer (8, 16, 32 or 64 bits) or a fixed-size byte
//     array.
//   - Bitfield: sub-byte members, constant or value-carrying, packed most
//     significant bit first into a whole number of bytes.
//   - Repeated: a count prefix followed by that many copies of a group.
//   - Choice: a tagged union whose alternatives each start with a constant
//     tag. Decoding tries alternatives in declaration order and takes the
//     first whose leading tag matches, so the constant bits of no two
//     leading tags may agree over the bits they share. A tag that runs
//     past the end of the input counts as a mismatch.
//   - Encrypted: a trailing region serialised on its own and sealed with a
//     crypto.CryptoBox. Nothing may follow it because its length is only
//     known once the packet ends.
//
// Layouts are validated once by New, so the encoder and decoder never meet a
// malformed description at run time:
//
//	var echo = codec.MustNew[echoTag]("echo_request",
//	    codec.Bytes("sender", 32),
//	    codec.Bytes("nonce", 24),
//	    codec.Sealed(
//	        codec.Tag8(0x00),
//	        codec.Uint64("ping_id"),
//	    ),
//	)
//
// Values travel as a Record: one entry per value-carrying element in
// layout order. Integers are uint64, byte arrays []byte, repeated groups
// []Record and choices Variant. Bitfield members and the contents of an
// encrypted region are flattened into the surrounding record.
//
// The box and nonce for an encrypted region are supplied out of band by a
// KeyResolver, which sees the record built so far. That lets a resolver pick
// the box from a sender key and the nonce from a nonce field that precede
// the region.
//
// Decoding checks a prefix of the input: bytes left after the layout is
// satisfied are ignored unless Options.Strict is set, in which case they fail
// with result.TrailingData. Input that ends early fails with result.Truncated
// rather than panicking.
package codec
