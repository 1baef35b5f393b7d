// Package limits provides centralized packet size constants and validation
// functions for the Tox packet codec.
//
// # Size Hierarchy
//
//   - MaxUDPPacket (2048 bytes): the largest datagram accepted from the
//     network. Decoders reject anything larger before attempting decryption.
//
//   - EnvelopeHeaderSize (56 bytes): the sender public key and nonce that
//     precede the encrypted region of every DHT-style packet.
//
//   - MinEncryptedPacket (72 bytes): the header plus the 16-byte Poly1305
//     tag. Shorter datagrams are truncated.
//
//   - MaxEncryptedRegion / MaxPlaintextRegion: what remains for the sealed
//     payload, with and without the tag. Encoders refuse larger payloads.
//
//   - MaxSentNodes (4): the node record limit of a nodes response.
//
// # Validation
//
//	if err := limits.ValidateSize(data, limits.MaxUDPPacket); err != nil {
//	    // ErrPacketEmpty or ErrPacketTooLarge
//	}
//
// The encryption overhead matches golang.org/x/crypto/nacl/box.Overhead.
package limits
