package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
)

// NonceSize is the length of a crypto_box nonce.
const NonceSize = 24

// Nonce is a 24-byte value used once per (shared key, message).
type Nonce [NonceSize]byte

// ErrNonceExhausted is returned by UniqueNonce once every value has been issued.
var ErrNonceExhausted = errors.New("nonce space exhausted")

// RandomNonce creates a cryptographically secure random nonce.
func RandomNonce() (Nonce, error) {
	var nonce Nonce
	if _, err := rand.Read(nonce[:]); err != nil {
		return Nonce{}, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

// Increment adds one to the nonce, treating it as a big-endian integer.
// The all-0xFF nonce wraps to zero.
func (n *Nonce) Increment() {
	for i := NonceSize - 1; i >= 0; i-- {
		n[i]++
		if n[i] != 0 {
			return
		}
	}
}

// Compare orders nonces as big-endian integers.
func (n Nonce) Compare(other Nonce) int {
	return bytes.Compare(n[:], other[:])
}

func (n Nonce) String() string {
	return fmt.Sprintf("%x", n[:])
}

// UniqueNonce issues a strictly increasing sequence of nonces for one sender.
// It is not safe for concurrent use: two goroutines racing on Next could
// receive the same value.
type UniqueNonce struct {
	next      Nonce
	start     Nonce
	exhausted bool
}

// NewUniqueNonce starts a sequence at a random nonce.
func NewUniqueNonce() (*UniqueNonce, error) {
	start, err := RandomNonce()
	if err != nil {
		return nil, err
	}
	return NewUniqueNonceFrom(start), nil
}

// NewUniqueNonceFrom starts a sequence at the given nonce.
func NewUniqueNonceFrom(start Nonce) *UniqueNonce {
	return &UniqueNonce{next: start, start: start}
}

// Next returns the current nonce and advances the sequence. Once the counter
// wraps around to its starting value every further call fails.
func (u *UniqueNonce) Next() (Nonce, error) {
	if u.exhausted {
		return Nonce{}, ErrNonceExhausted
	}
	current := u.next
	u.next.Increment()
	if u.next == u.start {
		u.exhausted = true
	}
	return current, nil
}

// Peek returns the nonce the next call to Next will issue.
func (u *UniqueNonce) Peek() Nonce {
	return u.next
}
