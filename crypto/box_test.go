package crypto

import (
	"bytes"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/toxpacket/result"
	"github.com/opd-ai/toxpacket/wire"
)

type textFormat struct{}

// newBoxPair returns the two ends of one peer relationship.
func newBoxPair(t *testing.T) (alice, bob *CryptoBox) {
	t.Helper()
	a, err := GenerateKeyPair()
	require.NoError(t, err)
	b, err := GenerateKeyPair()
	require.NoError(t, err)
	return NewCryptoBox(b.Public, a.Secret), NewCryptoBox(a.Public, b.Secret)
}

func TestCryptoBoxHelloAndEmpty(t *testing.T) {
	alice, bob := newBoxPair(t)
	var nonce Nonce

	sealed := alice.Encrypt([]byte("hello"), nonce)
	assert.Len(t, sealed, 5+Overhead)

	plain, err := bob.Decrypt(sealed, nonce)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), plain)

	sealed = alice.Encrypt(nil, nonce)
	assert.Len(t, sealed, Overhead)
	plain, err = bob.Decrypt(sealed, nonce)
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestCryptoBoxRoundTripSizes(t *testing.T) {
	alice, bob := newBoxPair(t)

	sizes := []int{0, 1, 16, 1372, 64 * 1024, 10 * 1024 * 1024}
	for _, size := range sizes {
		plain := make([]byte, size)
		_, err := rand.Read(plain)
		require.NoError(t, err)
		nonce, err := RandomNonce()
		require.NoError(t, err)

		sealed := alice.Encrypt(plain, nonce)
		require.Len(t, sealed, size+Overhead)

		opened, err := bob.Decrypt(sealed, nonce)
		require.NoError(t, err, "size %d", size)
		assert.True(t, bytes.Equal(plain, opened), "size %d round trip mismatch", size)
	}
}

func TestCryptoBoxBitFlipsFailAuthentication(t *testing.T) {
	alice, bob := newBoxPair(t)
	nonce, err := RandomNonce()
	require.NoError(t, err)
	sealed := alice.Encrypt([]byte("attack at dawn"), nonce)

	for _, idx := range []int{0, len(sealed) / 2, len(sealed) - 1} {
		for bit := 0; bit < 8; bit++ {
			tampered := append([]byte(nil), sealed...)
			tampered[idx] ^= 1 << bit
			_, err := bob.Decrypt(tampered, nonce)
			assert.ErrorIs(t, err, result.HMACError, "byte %d bit %d", idx, bit)
		}
	}

	for _, idx := range []int{0, NonceSize - 1} {
		wrong := nonce
		wrong[idx] ^= 0x01
		_, err := bob.Decrypt(sealed, wrong)
		assert.ErrorIs(t, err, result.HMACError, "nonce byte %d", idx)
	}
}

func TestCryptoBoxWrongKey(t *testing.T) {
	alice, _ := newBoxPair(t)
	_, eve := newBoxPair(t)
	var nonce Nonce

	_, err := eve.Decrypt(alice.Encrypt([]byte("secret"), nonce), nonce)
	assert.ErrorIs(t, err, result.HMACError)

	_, err = eve.Decrypt([]byte{1, 2, 3}, nonce)
	assert.ErrorIs(t, err, result.HMACError, "short ciphertext")
}

func TestCryptoBoxLogsAuthenticationFailure(t *testing.T) {
	var buf bytes.Buffer
	original := logrus.StandardLogger().Out
	level := logrus.GetLevel()
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.DebugLevel)
	defer func() {
		logrus.SetOutput(original)
		logrus.SetLevel(level)
	}()

	alice, _ := newBoxPair(t)
	_, eve := newBoxPair(t)
	var nonce Nonce
	_, err := eve.Decrypt(alice.Encrypt([]byte("secret"), nonce), nonce)
	assert.ErrorIs(t, err, result.HMACError)

	out := buf.String()
	assert.Contains(t, out, "function=Decrypt")
	assert.Contains(t, out, "operation=open")
	assert.Contains(t, out, "message authentication failed")
	assert.Contains(t, out, "cipher_size=")
}

func TestSealOpenTyped(t *testing.T) {
	alice, bob := newBoxPair(t)
	nonce, err := RandomNonce()
	require.NoError(t, err)

	plain := wire.NewPlainText[textFormat]([]byte("typed"))
	sealed := Seal(alice, plain, nonce)

	opened := Open(bob, sealed, nonce)
	require.True(t, opened.Ok())
	assert.Equal(t, []byte("typed"), opened.Value().Bytes())

	tampered := append([]byte(nil), sealed.Bytes()...)
	tampered[0] ^= 0x80
	failed := Open(bob, wire.NewCipherText[textFormat](tampered), nonce)
	require.False(t, failed.Ok())
	assert.Equal(t, result.HMACError, failed.Code())
}

func TestCryptoBoxConcurrentUse(t *testing.T) {
	alice, bob := newBoxPair(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var nonce Nonce
			nonce[0] = byte(i)
			msg := []byte{byte(i), byte(i), byte(i)}
			plain, err := bob.Decrypt(alice.Encrypt(msg, nonce), nonce)
			assert.NoError(t, err)
			assert.Equal(t, msg, plain)
		}(i)
	}
	wg.Wait()
}

func TestCryptoBoxWipe(t *testing.T) {
	alice, bob := newBoxPair(t)
	var nonce Nonce
	sealed := alice.Encrypt([]byte("bye"), nonce)

	bob.Wipe()
	_, err := bob.Decrypt(sealed, nonce)
	assert.ErrorIs(t, err, result.HMACError)
}
