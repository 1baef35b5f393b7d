// Package toxpacket builds and opens Tox DHT packets.
//
// The subpackages carry the pieces: wire holds typed byte containers and a
// bit reader, crypto the Curve25519 boxes and nonces, codec the declarative
// layouts with their generic encoder and decoder, and packet the concrete
// echo and nodes packets. An Endpoint ties them together for one local
// identity.
//
// # Getting Started
//
//	alice, err := toxpacket.NewEndpoint(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bob, err := toxpacket.NewEndpoint(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := alice.SealEchoRequest(bob.PublicKey(), 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msg := bob.Open(data)
//	if !msg.Ok() {
//	    log.Printf("drop packet: %v", msg.Err())
//	}
//
// # Failures
//
// Decoding never panics on hostile input. Failures are reported through
// result.Partial with a result.StatusCode: HMACError when authentication
// fails, FormatError for malformed payloads, Truncated for short input and
// Failure for local problems such as an unknown peer.
package toxpacket
