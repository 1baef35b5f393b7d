package toxpacket

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/packet"
	"github.com/opd-ai/toxpacket/result"
)

// Options configures an Endpoint.
type Options struct {
	// SecretKey restores an identity. A nil key generates a new one.
	SecretKey *crypto.SecretKey
	// KeyCacheSize bounds the number of cached shared keys. Zero selects
	// crypto.DefaultKeyCacheSize.
	KeyCacheSize int
	// StartNonce fixes the first nonce issued. A nil nonce starts at a
	// random point.
	StartNonce *crypto.Nonce
}

// NewOptions returns the default options.
func NewOptions() *Options {
	return &Options{KeyCacheSize: crypto.DefaultKeyCacheSize}
}

// Endpoint seals packets from one local identity and opens packets sent to
// it. It is safe for concurrent use.
type Endpoint struct {
	keyPair *crypto.KeyPair
	keys    *crypto.SharedKeyCache

	nonceMu sync.Mutex
	nonces  *crypto.UniqueNonce
}

// NewEndpoint creates an endpoint. A nil options uses NewOptions.
func NewEndpoint(options *Options) (*Endpoint, error) {
	if options == nil {
		options = NewOptions()
	}

	var keyPair *crypto.KeyPair
	var err error
	if options.SecretKey != nil {
		keyPair, err = crypto.KeyPairFromSecret(*options.SecretKey)
	} else {
		keyPair, err = crypto.GenerateKeyPair()
	}
	if err != nil {
		return nil, fmt.Errorf("endpoint key pair: %w", err)
	}

	keys, err := crypto.NewSharedKeyCache(keyPair, options.KeyCacheSize)
	if err != nil {
		return nil, err
	}

	var nonces *crypto.UniqueNonce
	if options.StartNonce != nil {
		nonces = crypto.NewUniqueNonceFrom(*options.StartNonce)
	} else if nonces, err = crypto.NewUniqueNonce(); err != nil {
		return nil, fmt.Errorf("endpoint nonce: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewEndpoint",
		"public_key": keyPair.Public.String()[:16],
		"cache_size": options.KeyCacheSize,
	}).Debug("Endpoint created")

	return &Endpoint{keyPair: keyPair, keys: keys, nonces: nonces}, nil
}

// PublicKey returns the endpoint's public key.
func (e *Endpoint) PublicKey() crypto.PublicKey {
	return e.keyPair.Public
}

// SecretKey returns the endpoint's secret key so the identity can be saved.
func (e *Endpoint) SecretKey() crypto.SecretKey {
	return e.keyPair.Secret
}

// Keys returns the shared key cache used to open packets.
func (e *Endpoint) Keys() *crypto.SharedKeyCache {
	return e.keys
}

func (e *Endpoint) nextNonce() (crypto.Nonce, error) {
	e.nonceMu.Lock()
	defer e.nonceMu.Unlock()
	return e.nonces.Next()
}

// SealEchoRequest builds an echo request to peer.
func (e *Endpoint) SealEchoRequest(peer crypto.PublicKey, pingID uint64) ([]byte, error) {
	nonce, err := e.nextNonce()
	if err != nil {
		return nil, err
	}
	pkt, err := packet.NewEchoRequest(e.keyPair.Public, nonce, pingID).Encode(e.keys.Box(peer))
	if err != nil {
		return nil, err
	}
	return pkt.Bytes(), nil
}

// SealEchoResponse builds the response to an echo request from peer.
func (e *Endpoint) SealEchoResponse(peer crypto.PublicKey, pingID uint64) ([]byte, error) {
	nonce, err := e.nextNonce()
	if err != nil {
		return nil, err
	}
	pkt, err := packet.NewEchoResponse(e.keyPair.Public, nonce, pingID).Encode(e.keys.Box(peer))
	if err != nil {
		return nil, err
	}
	return pkt.Bytes(), nil
}

// SealNodesRequest asks peer for the nodes closest to target.
func (e *Endpoint) SealNodesRequest(peer, target crypto.PublicKey, pingID uint64) ([]byte, error) {
	nonce, err := e.nextNonce()
	if err != nil {
		return nil, err
	}
	pkt, err := packet.NewNodesRequest(e.keyPair.Public, nonce, target, pingID).Encode(e.keys.Box(peer))
	if err != nil {
		return nil, err
	}
	return pkt.Bytes(), nil
}

// SealNodesResponse answers a nodes request from peer.
func (e *Endpoint) SealNodesResponse(peer crypto.PublicKey, nodes []packet.NodeInfo, pingID uint64) ([]byte, error) {
	nonce, err := e.nextNonce()
	if err != nil {
		return nil, err
	}
	pkt, err := packet.NewNodesResponse(e.keyPair.Public, nonce, nodes, pingID).Encode(e.keys.Box(peer))
	if err != nil {
		return nil, err
	}
	return pkt.Bytes(), nil
}

// Open authenticates and decodes a packet of any known kind.
func (e *Endpoint) Open(data []byte) result.Partial[packet.Message] {
	msg := packet.Decode(data, e.keys)
	if !msg.Ok() {
		logrus.WithFields(logrus.Fields{
			"function": "Open",
			"size":     len(data),
			"status":   msg.Code().String(),
		}).Debug("Dropping packet")
	}
	return msg
}
