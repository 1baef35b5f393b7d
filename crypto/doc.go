// Package crypto implements the key, nonce and authenticated-encryption
// primitives used by the packet codec.
//
// Keys follow the NaCl crypto_box construction through golang.org/x/crypto:
// 32-byte Curve25519 public and secret keys, 24-byte nonces and a 16-byte
// Poly1305 authentication tag.
//
// A CryptoBox precomputes the shared key for one (peer public key, own secret
// key) pair and is then reused for every packet exchanged with that peer:
//
//	keys, err := crypto.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	box := crypto.NewCryptoBox(peerPublicKey, keys.Secret)
//
//	nonce, _ := crypto.RandomNonce()
//	sealed := box.Encrypt([]byte("hello"), nonce)
//	plain, err := box.Decrypt(sealed, nonce) // err matches result.HMACError on tampering
//
// # Nonce safety
//
// No two messages encrypted under the same shared key may use the same nonce.
// RandomNonce is suitable for unrelated messages; UniqueNonce issues a strictly
// increasing sequence for a single sender. UniqueNonce is not safe for
// concurrent use and must be confined to one goroutine or guarded by the
// caller.
//
// A CryptoBox holds no mutable state once constructed and may be shared by
// concurrent Encrypt and Decrypt calls. SharedKeyCache keeps recently used
// boxes keyed by peer public key.
package crypto
