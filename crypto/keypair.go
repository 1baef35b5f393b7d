package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// KeySize is the length of public and secret keys.
const KeySize = 32

// PublicKey is a Curve25519 public key. Public keys are exchanged with peers.
type PublicKey [KeySize]byte

// SecretKey is a Curve25519 secret key. It never leaves the owning process.
type SecretKey [KeySize]byte

// KeyPair represents a NaCl crypto_box key pair identifying one endpoint.
type KeyPair struct {
	Public PublicKey
	Secret SecretKey
}

// ErrZeroSecretKey is returned when an all-zero secret key is supplied.
var ErrZeroSecretKey = errors.New("invalid secret key: all zeros")

// GenerateKeyPair creates a new random NaCl key pair.
func GenerateKeyPair() (*KeyPair, error) {
	publicKey, secretKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key pair: %w", err)
	}

	return &KeyPair{
		Public: *publicKey,
		Secret: *secretKey,
	}, nil
}

// KeyPairFromSecret rebuilds a key pair from an existing secret key, deriving
// the public key by scalar multiplication with the Curve25519 base point.
func KeyPairFromSecret(secretKey SecretKey) (*KeyPair, error) {
	if isZero(secretKey[:]) {
		return nil, ErrZeroSecretKey
	}

	publicKey, err := curve25519.X25519(secretKey[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	kp := &KeyPair{Secret: secretKey}
	copy(kp.Public[:], publicKey)
	return kp, nil
}

// String returns the key as upper-case hex, the form Tox clients display.
func (k PublicKey) String() string {
	return fmt.Sprintf("%X", k[:])
}

// ParsePublicKey decodes a 64-character hex public key.
func ParsePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	if err := decodeHexKey(s, k[:]); err != nil {
		return PublicKey{}, fmt.Errorf("parse public key: %w", err)
	}
	return k, nil
}

// ParseSecretKey decodes a 64-character hex secret key.
func ParseSecretKey(s string) (SecretKey, error) {
	var k SecretKey
	if err := decodeHexKey(s, k[:]); err != nil {
		return SecretKey{}, fmt.Errorf("parse secret key: %w", err)
	}
	return k, nil
}

func decodeHexKey(s string, dst []byte) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
