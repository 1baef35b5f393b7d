package packet

import (
	"github.com/opd-ai/toxpacket/codec"
	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/limits"
	"github.com/opd-ai/toxpacket/result"
	"github.com/opd-ai/toxpacket/wire"
)

type (
	nodesRequestTag  struct{}
	nodesResponseTag struct{}
)

// NodesRequestSize is the fixed wire size of a nodes request.
const NodesRequestSize = crypto.KeySize + crypto.NonceSize + 1 + crypto.KeySize + 8 + crypto.Overhead

var (
	nodesRequestPayload = []codec.Element{
		codec.Tag8(KindNodesRequest),
		codec.Bytes("client_id", crypto.KeySize),
		codec.Uint64("ping_id"),
	}
	nodesResponsePayload = []codec.Element{
		codec.Tag8(KindNodesResponse),
		codec.Repeat("nodes", 8, limits.MaxSentNodes, nodeInfoFields...),
		codec.Uint64("ping_id"),
	}
)

// NodesRequestFormat is [sender][nonce][sealed{0x02, client_id, ping_id}].
var NodesRequestFormat = codec.MustNew[nodesRequestTag]("nodes_request", envelope(nodesRequestPayload...)...)

// NodesResponseFormat is [sender][nonce][sealed{0x04, count, nodes..., ping_id}].
var NodesResponseFormat = codec.MustNew[nodesResponseTag]("nodes_response", envelope(nodesResponsePayload...)...)

// NodesRequest asks a peer for the nodes closest to ClientID.
type NodesRequest struct {
	Sender   crypto.PublicKey
	Nonce    crypto.Nonce
	ClientID crypto.PublicKey
	PingID   uint64
}

// NodesResponse lists up to limits.MaxSentNodes nodes.
type NodesResponse struct {
	Sender crypto.PublicKey
	Nonce  crypto.Nonce
	Nodes  []NodeInfo
	PingID uint64
}

// NewNodesRequest builds a nodes request.
func NewNodesRequest(sender crypto.PublicKey, nonce crypto.Nonce, clientID crypto.PublicKey, pingID uint64) NodesRequest {
	return NodesRequest{Sender: sender, Nonce: nonce, ClientID: clientID, PingID: pingID}
}

// NewNodesResponse builds a nodes response.
func NewNodesResponse(sender crypto.PublicKey, nonce crypto.Nonce, nodes []NodeInfo, pingID uint64) NodesResponse {
	return NodesResponse{Sender: sender, Nonce: nonce, Nodes: nodes, PingID: pingID}
}

// Kind implements Message.
func (NodesRequest) Kind() byte { return KindNodesRequest }

// Kind implements Message.
func (NodesResponse) Kind() byte { return KindNodesResponse }

// Header implements Message.
func (m NodesRequest) Header() Header { return Header{Sender: m.Sender, Nonce: m.Nonce} }

// Header implements Message.
func (m NodesResponse) Header() Header { return Header{Sender: m.Sender, Nonce: m.Nonce} }

// Encode seals the request with the box shared with the recipient.
func (m NodesRequest) Encode(box *crypto.CryptoBox) (codec.Packet[nodesRequestTag], error) {
	client := m.ClientID
	return codec.NewPacket(NodesRequestFormat, m.Header().record(client[:], m.PingID), sealWith(box))
}

// Encode seals the response with the box shared with the recipient. More
// than limits.MaxSentNodes nodes, or a node without a valid address, fail
// with result.Failure.
func (m NodesResponse) Encode(box *crypto.CryptoBox) (codec.Packet[nodesResponseTag], error) {
	rows := make([]codec.Record, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		row, err := n.record()
		if err != nil {
			return codec.Packet[nodesResponseTag]{}, result.Errorf(result.Failure, "%v", err)
		}
		rows = append(rows, row)
	}
	return codec.NewPacket(NodesResponseFormat, m.Header().record(rows, m.PingID), sealWith(box))
}

// DecodeNodesRequest opens and parses a nodes request.
func DecodeNodesRequest(data []byte, keys Keyring) result.Partial[NodesRequest] {
	rec := codec.Decode(NodesRequestFormat, wire.NewCipherText[nodesRequestTag](data), openOptions(keys))
	return result.Map(rec, nodesRequestFromRecord)
}

// DecodeNodesResponse opens and parses a nodes response.
func DecodeNodesResponse(data []byte, keys Keyring) result.Partial[NodesResponse] {
	rec := codec.Decode(NodesResponseFormat, wire.NewCipherText[nodesResponseTag](data), openOptions(keys))
	return result.Map(rec, nodesResponseFromRecord)
}

func nodesRequestFromRecord(rec codec.Record) NodesRequest {
	h := headerFromRecord(rec)
	m := NodesRequest{Sender: h.Sender, Nonce: h.Nonce, PingID: rec.Uint(3)}
	copy(m.ClientID[:], rec.Bytes(2))
	return m
}

func nodesResponseFromRecord(rec codec.Record) NodesResponse {
	h := headerFromRecord(rec)
	rows := rec.Rows(2)
	m := NodesResponse{Sender: h.Sender, Nonce: h.Nonce, Nodes: make([]NodeInfo, 0, len(rows)), PingID: rec.Uint(3)}
	for _, row := range rows {
		m.Nodes = append(m.Nodes, nodeInfoFromRecord(row))
	}
	return m
}
