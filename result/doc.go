// Package result provides the Partial type used by the packet codec to report
// either a decoded value or a typed failure status.
//
// Recoverable failures such as a mismatched tag byte or a ciphertext that
// fails authentication are carried as a StatusCode rather than a bare error
// string, so callers can decide what to do with a packet without parsing
// messages:
//
//	p := packet.DecodeEchoRequest(data, keys)
//	if !p.Ok() {
//	    switch p.Code() {
//	    case result.HMACError:
//	        // count against the sending peer
//	    default:
//	        // drop the packet
//	    }
//	}
//
// Partial values compose with Bind, Map and Then, each of which stops at the
// first failure.
package result
