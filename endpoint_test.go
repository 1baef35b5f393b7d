package toxpacket

import (
	"net/netip"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/packet"
	"github.com/opd-ai/toxpacket/result"
)

func newEndpoints(t *testing.T) (*Endpoint, *Endpoint) {
	t.Helper()
	alice, err := NewEndpoint(nil)
	require.NoError(t, err)
	bob, err := NewEndpoint(nil)
	require.NoError(t, err)
	return alice, bob
}

func TestEndpointEchoExchange(t *testing.T) {
	alice, bob := newEndpoints(t)

	data, err := alice.SealEchoRequest(bob.PublicKey(), 0x1122)
	require.NoError(t, err)
	assert.Len(t, data, packet.EchoSize)

	msg := bob.Open(data)
	require.True(t, msg.Ok(), "open: %v", msg.Err())
	req, ok := msg.Value().(packet.EchoRequest)
	require.True(t, ok, "got %T", msg.Value())
	assert.Equal(t, uint64(0x1122), req.PingID)
	assert.Equal(t, alice.PublicKey(), req.Sender)

	reply, err := bob.SealEchoResponse(req.Sender, req.PingID)
	require.NoError(t, err)
	back := alice.Open(reply)
	require.True(t, back.Ok(), "open: %v", back.Err())
	resp, ok := back.Value().(packet.EchoResponse)
	require.True(t, ok, "got %T", back.Value())
	assert.Equal(t, req.PingID, resp.PingID)
}

func TestEndpointNodesExchange(t *testing.T) {
	alice, bob := newEndpoints(t)

	target, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	data, err := alice.SealNodesRequest(bob.PublicKey(), target.Public, 7)
	require.NoError(t, err)

	msg := bob.Open(data)
	require.True(t, msg.Ok(), "open: %v", msg.Err())
	req := msg.Value().(packet.NodesRequest)
	assert.Equal(t, target.Public, req.ClientID)

	nodes := []packet.NodeInfo{
		{Addr: netip.MustParseAddr("203.0.113.5"), Port: 33445, PublicKey: target.Public},
		{TCP: true, Addr: netip.MustParseAddr("2001:db8::5"), Port: 443, PublicKey: alice.PublicKey()},
	}
	reply, err := bob.SealNodesResponse(req.Sender, nodes, req.PingID)
	require.NoError(t, err)

	back := alice.Open(reply)
	require.True(t, back.Ok(), "open: %v", back.Err())
	resp := back.Value().(packet.NodesResponse)
	assert.Equal(t, nodes, resp.Nodes)
	assert.Equal(t, uint64(7), resp.PingID)
}

func TestEndpointNoncesNeverRepeat(t *testing.T) {
	alice, bob := newEndpoints(t)

	const workers, perWorker = 8, 50
	var mu sync.Mutex
	seen := make(map[crypto.Nonce]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				data, err := alice.SealEchoRequest(bob.PublicKey(), uint64(i))
				if !assert.NoError(t, err) {
					return
				}
				var n crypto.Nonce
				copy(n[:], data[crypto.KeySize:crypto.KeySize+crypto.NonceSize])
				mu.Lock()
				assert.False(t, seen[n], "nonce %s reused", n)
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
}

func TestEndpointRestoredIdentity(t *testing.T) {
	alice, bob := newEndpoints(t)

	secret := bob.SecretKey()
	restored, err := NewEndpoint(&Options{SecretKey: &secret})
	require.NoError(t, err)
	assert.Equal(t, bob.PublicKey(), restored.PublicKey())

	data, err := alice.SealEchoRequest(bob.PublicKey(), 3)
	require.NoError(t, err)
	assert.True(t, restored.Open(data).Ok())
}

func TestEndpointStartNonce(t *testing.T) {
	alice, bob := newEndpoints(t)
	var start crypto.Nonce
	start[crypto.NonceSize-1] = 0xff

	secret := alice.SecretKey()
	e, err := NewEndpoint(&Options{SecretKey: &secret, StartNonce: &start})
	require.NoError(t, err)

	first, err := e.SealEchoRequest(bob.PublicKey(), 1)
	require.NoError(t, err)
	second, err := e.SealEchoRequest(bob.PublicKey(), 2)
	require.NoError(t, err)

	nonceOf := func(data []byte) []byte { return data[crypto.KeySize : crypto.KeySize+crypto.NonceSize] }
	assert.Equal(t, start[:], nonceOf(first))
	next := start
	next.Increment()
	assert.Equal(t, next[:], nonceOf(second))
}

func TestEndpointRejectsForeignPacket(t *testing.T) {
	alice, bob := newEndpoints(t)
	eve, err := NewEndpoint(nil)
	require.NoError(t, err)

	data, err := alice.SealEchoRequest(bob.PublicKey(), 1)
	require.NoError(t, err)

	msg := eve.Open(data)
	require.False(t, msg.Ok())
	assert.Equal(t, result.HMACError, msg.Code())

	assert.Equal(t, result.Truncated, bob.Open(nil).Code())
}

func TestNewEndpointZeroSecret(t *testing.T) {
	var zero crypto.SecretKey
	_, err := NewEndpoint(&Options{SecretKey: &zero})
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrZeroSecretKey)
}
