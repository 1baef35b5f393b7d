package codec

import (
	"errors"

	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/result"
)

// ErrKeyUnavailable is the cause of every result.Failure raised because an
// encrypted region had no usable box: no resolver, a resolver error such as
// an unknown sender, or a nil box. The resolver's own error is kept in the
// detail text only, so its status code never leaks through errors.Is.
var ErrKeyUnavailable = errors.New("no key for encrypted region")

// KeyResolver supplies the box and nonce for an encrypted region. prefix
// holds the values encoded or decoded so far at the region's level, so a
// resolver may look up the sender key and nonce that precede the region.
type KeyResolver func(prefix Record) (*crypto.CryptoBox, crypto.Nonce, error)

// StaticKeys returns a resolver that always uses the given box and nonce.
func StaticKeys(box *crypto.CryptoBox, nonce crypto.Nonce) KeyResolver {
	return func(Record) (*crypto.CryptoBox, crypto.Nonce, error) {
		return box, nonce, nil
	}
}

func resolveKeys(keys KeyResolver, prefix Record) (*crypto.CryptoBox, crypto.Nonce, error) {
	if keys == nil {
		return nil, crypto.Nonce{}, result.Wrap(result.Failure, ErrKeyUnavailable, "encrypted region without a key resolver")
	}
	box, nonce, err := keys(prefix)
	if err != nil {
		return nil, crypto.Nonce{}, result.Wrap(result.Failure, ErrKeyUnavailable, "resolve keys: %v", err)
	}
	if box == nil {
		return nil, crypto.Nonce{}, result.Wrap(result.Failure, ErrKeyUnavailable, "key resolver returned no box")
	}
	return box, nonce, nil
}

// Options controls decoding.
type Options struct {
	// Keys opens encrypted regions. Formats without one may leave it nil.
	Keys KeyResolver
	// Strict rejects bytes left over at the end of the input and at the end
	// of every decrypted region with result.TrailingData.
	Strict bool
	// MinSize and MaxSize bound the input length in bytes before any field
	// is read. Zero disables a bound. With either bound set, empty input
	// and input below MinSize fail with result.Truncated, and input above
	// MaxSize with result.FormatError. Both count in the decode metrics.
	MinSize int
	MaxSize int
}

// sealedRegion marks the plaintext of an encrypted region.
type sealedRegion struct{}
