package crypto

import (
	"testing"
)

// BenchmarkGenerateKeyPair measures key pair generation performance
func BenchmarkGenerateKeyPair(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := GenerateKeyPair()
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRandomNonce measures nonce generation performance
func BenchmarkRandomNonce(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := RandomNonce()
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkUniqueNonce measures sequential nonce issuance
func BenchmarkUniqueNonce(b *testing.B) {
	u := NewUniqueNonceFrom(Nonce{})
	for i := 0; i < b.N; i++ {
		if _, err := u.Next(); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkNewCryptoBox measures the shared key precomputation
func BenchmarkNewCryptoBox(b *testing.B) {
	a, peer := benchKeys(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewCryptoBox(peer.Public, a.Secret)
	}
}

// BenchmarkEncrypt measures encryption of a DHT-sized payload
func BenchmarkEncrypt(b *testing.B) {
	a, peer := benchKeys(b)
	box := NewCryptoBox(peer.Public, a.Secret)
	message := make([]byte, 193)
	nonce, err := RandomNonce()
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(len(message)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		box.Encrypt(message, nonce)
	}
}

// BenchmarkDecrypt measures decryption of a DHT-sized payload
func BenchmarkDecrypt(b *testing.B) {
	a, peer := benchKeys(b)
	seal := NewCryptoBox(peer.Public, a.Secret)
	open := NewCryptoBox(a.Public, peer.Secret)
	nonce, err := RandomNonce()
	if err != nil {
		b.Fatal(err)
	}
	ciphertext := seal.Encrypt(make([]byte, 193), nonce)

	b.SetBytes(int64(len(ciphertext)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := open.Decrypt(ciphertext, nonce); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSharedKeyCacheHit measures a cached box lookup
func BenchmarkSharedKeyCacheHit(b *testing.B) {
	a, peer := benchKeys(b)
	cache, err := NewSharedKeyCache(a, 0)
	if err != nil {
		b.Fatal(err)
	}
	cache.Box(peer.Public)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Box(peer.Public)
	}
}

func benchKeys(b *testing.B) (*KeyPair, *KeyPair) {
	b.Helper()
	a, err := GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	peer, err := GenerateKeyPair()
	if err != nil {
		b.Fatal(err)
	}
	return a, peer
}
