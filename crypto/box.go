package crypto

import (
	"fmt"

	"golang.org/x/crypto/nacl/box"

	"github.com/opd-ai/toxpacket/result"
	"github.com/opd-ai/toxpacket/wire"
)

// Overhead is the number of bytes Encrypt adds to a plaintext.
const Overhead = box.Overhead

// CryptoBox encrypts and decrypts with a shared key precomputed from one peer
// public key and one local secret key.
type CryptoBox struct {
	shared [KeySize]byte
	peer   PublicKey
}

// NewCryptoBox precomputes the shared key between peer and own.
func NewCryptoBox(peer PublicKey, own SecretKey) *CryptoBox {
	logger := NewLogger("NewCryptoBox").WithFields(SecureFieldHash(peer[:], "peer_key"))
	logger.Debug("Precomputing shared key")

	b := &CryptoBox{peer: peer}
	peerCopy := [KeySize]byte(peer)
	ownCopy := [KeySize]byte(own)
	box.Precompute(&b.shared, &peerCopy, &ownCopy)
	ZeroBytes(ownCopy[:])

	return b
}

// Peer returns the public key this box was created for.
func (b *CryptoBox) Peer() PublicKey {
	return b.peer
}

// Encrypt seals plain under nonce. The result is len(plain)+Overhead bytes.
func (b *CryptoBox) Encrypt(plain []byte, nonce Nonce) []byte {
	n := [NonceSize]byte(nonce)
	return box.SealAfterPrecomputation(make([]byte, 0, len(plain)+Overhead), plain, &n, &b.shared)
}

// Decrypt opens cipher under nonce. A tampered ciphertext, a wrong nonce or a
// wrong key all fail with a result.HMACError. Tag verification is constant
// time.
func (b *CryptoBox) Decrypt(cipher []byte, nonce Nonce) ([]byte, error) {
	if len(cipher) < Overhead {
		return nil, result.Errorf(result.HMACError, "ciphertext of %d bytes is shorter than the %d-byte tag", len(cipher), Overhead)
	}

	n := [NonceSize]byte(nonce)
	plain, ok := box.OpenAfterPrecomputation(make([]byte, 0, len(cipher)-Overhead), cipher, &n, &b.shared)
	if !ok {
		err := result.Errorf(result.HMACError, "message authentication failed")
		NewLogger("Decrypt").
			WithFields(SecureFieldHash(b.peer[:], "peer_key")).
			WithField("cipher_size", len(cipher)).
			WithError(err, "open").
			Debug("Message authentication failed")
		return nil, err
	}
	return plain, nil
}

// Wipe zeroes the shared key. The box must not be used afterwards.
func (b *CryptoBox) Wipe() {
	ZeroBytes(b.shared[:])
}

func (b *CryptoBox) String() string {
	return fmt.Sprintf("CryptoBox{peer: %X...}", b.peer[:4])
}

// Seal encrypts a typed plaintext into ciphertext of the same format.
func Seal[F any](b *CryptoBox, plain wire.PlainText[F], nonce Nonce) wire.CipherText[F] {
	return wire.NewCipherText[F](b.Encrypt(plain.Bytes(), nonce))
}

// Open decrypts typed ciphertext, reporting authentication failure as
// result.HMACError.
func Open[F any](b *CryptoBox, cipher wire.CipherText[F], nonce Nonce) result.Partial[wire.PlainText[F]] {
	plain, err := b.Decrypt(cipher.Bytes(), nonce)
	if err != nil {
		return result.Fail[wire.PlainText[F]](err)
	}
	return result.Success(wire.NewPlainText[F](plain))
}
