package crypto

import (
	"bytes"
	"testing"
)

// FuzzCryptoBoxRoundTrip checks that anything sealed opens unchanged.
func FuzzCryptoBoxRoundTrip(f *testing.F) {
	f.Add([]byte("hello"))
	f.Add([]byte(""))
	f.Add(make([]byte, 100))

	sender, err := GenerateKeyPair()
	if err != nil {
		f.Fatal(err)
	}
	receiver, err := GenerateKeyPair()
	if err != nil {
		f.Fatal(err)
	}
	seal := NewCryptoBox(receiver.Public, sender.Secret)
	open := NewCryptoBox(sender.Public, receiver.Secret)

	f.Fuzz(func(t *testing.T, plaintext []byte) {
		// Skip very large inputs to prevent OOM
		if len(plaintext) > 10000 {
			return
		}

		nonce, err := RandomNonce()
		if err != nil {
			t.Fatal(err)
		}
		decrypted, err := open.Decrypt(seal.Encrypt(plaintext, nonce), nonce)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if !bytes.Equal(plaintext, decrypted) {
			t.Errorf("Decryption mismatch: got %q, want %q", decrypted, plaintext)
		}
	})
}

// FuzzDecrypt feeds arbitrary ciphertext to Decrypt, which must fail
// cleanly rather than panic.
func FuzzDecrypt(f *testing.F) {
	f.Add([]byte{})
	f.Add(make([]byte, Overhead-1))
	f.Add(make([]byte, Overhead))
	f.Add(make([]byte, 64))

	a, err := GenerateKeyPair()
	if err != nil {
		f.Fatal(err)
	}
	b, err := GenerateKeyPair()
	if err != nil {
		f.Fatal(err)
	}
	box := NewCryptoBox(b.Public, a.Secret)

	f.Fuzz(func(t *testing.T, ciphertext []byte) {
		var nonce Nonce
		if _, err := box.Decrypt(ciphertext, nonce); err == nil {
			t.Errorf("forged ciphertext of %d bytes authenticated", len(ciphertext))
		}
	})
}

// FuzzNonceIncrement checks that Increment always moves forward unless it
// wraps from the all-ones nonce.
func FuzzNonceIncrement(f *testing.F) {
	f.Add(make([]byte, NonceSize))
	f.Add(bytes.Repeat([]byte{0xff}, NonceSize))
	f.Add(append(make([]byte, NonceSize-1), 0xff))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) != NonceSize {
			return
		}
		var n Nonce
		copy(n[:], data)
		next := n
		next.Increment()

		if bytes.Equal(data, bytes.Repeat([]byte{0xff}, NonceSize)) {
			if next != (Nonce{}) {
				t.Errorf("all-ones nonce should wrap to zero, got %s", next)
			}
			return
		}
		if next.Compare(n) <= 0 {
			t.Errorf("Increment(%s) = %s, not greater", n, next)
		}
	})
}

// FuzzSecureWipe fuzzes the secure memory wiping function
func FuzzSecureWipe(f *testing.F) {
	f.Add([]byte("secret"))
	f.Add([]byte{})
	f.Add(make([]byte, 1000))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) == 0 {
			return
		}
		buf := append([]byte(nil), data...)
		if err := SecureWipe(buf); err != nil {
			t.Fatalf("SecureWipe: %v", err)
		}
		for i, v := range buf {
			if v != 0 {
				t.Fatalf("byte %d not wiped", i)
			}
		}
	})
}
