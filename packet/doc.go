// Package packet defines concrete Tox DHT packets on top of the codec
// package.
//
// Every packet shares one envelope: the sender's public key, a nonce, and an
// encrypted region whose first byte is the packet kind.
//
//	[sender: 32][nonce: 24][sealed{ [kind: 1] ... }]
//
// The kind sits inside the encrypted region, so a receiver learns it only
// after authenticating the payload. Decode opens the region once and
// dispatches on the kind; the DecodeEchoRequest family decodes when the kind
// is already expected.
//
// Encoding takes the CryptoBox shared with the recipient. Decoding takes a
// Keyring that maps the sender key found in the envelope to a box, such as
// crypto.SharedKeyCache:
//
//	cache, _ := crypto.NewSharedKeyCache(ourKeys, 0)
//	msg := packet.Decode(datagram, cache)
//	if !msg.Ok() {
//	    return // drop the packet
//	}
//	switch m := msg.Value().(type) {
//	case packet.EchoRequest:
//	    ...
//	}
package packet
