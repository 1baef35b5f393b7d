package packet

import (
	"fmt"
	"net/netip"

	"github.com/opd-ai/toxpacket/codec"
	"github.com/opd-ai/toxpacket/crypto"
)

// Address family tags, stored in the low seven bits of a node record's
// first byte. The high bit marks a TCP relay.
const (
	FamilyIPv4 = 2
	FamilyIPv6 = 10
)

// Alternative indexes of the address choice.
const (
	altIPv4 = 0
	altIPv6 = 1
)

// nodeInfoFields is one node record: a tagged address, port and key.
var nodeInfoFields = []codec.Element{
	codec.OneOf("ip",
		codec.Alt("ipv4",
			codec.Bits(codec.Flag("tcp", 1), codec.ConstBits(7, FamilyIPv4)),
			codec.Bytes("address", 4),
		),
		codec.Alt("ipv6",
			codec.Bits(codec.Flag("tcp", 1), codec.ConstBits(7, FamilyIPv6)),
			codec.Bytes("address", 16),
		),
	),
	codec.Uint16("port"),
	codec.Bytes("public_key", crypto.KeySize),
}

// NodeInfo describes a DHT node.
type NodeInfo struct {
	TCP       bool
	Addr      netip.Addr
	Port      uint16
	PublicKey crypto.PublicKey
}

// NodeInfoSize returns the wire size of a record for addr.
func NodeInfoSize(addr netip.Addr) int {
	if addr.Unmap().Is4() {
		return 1 + 4 + 2 + crypto.KeySize
	}
	return 1 + 16 + 2 + crypto.KeySize
}

func (n NodeInfo) String() string {
	proto := "udp"
	if n.TCP {
		proto = "tcp"
	}
	return fmt.Sprintf("%s://%s (%X...)", proto, netip.AddrPortFrom(n.Addr, n.Port), n.PublicKey[:4])
}

func (n NodeInfo) record() (codec.Record, error) {
	var tcp uint64
	if n.TCP {
		tcp = 1
	}

	var ip codec.Variant
	switch addr := n.Addr.Unmap(); {
	case addr.Is4():
		a := addr.As4()
		ip = codec.Variant{Index: altIPv4, Fields: codec.Record{tcp, a[:]}}
	case addr.Is6():
		a := addr.As16()
		ip = codec.Variant{Index: altIPv6, Fields: codec.Record{tcp, a[:]}}
	default:
		return nil, fmt.Errorf("node %X...: invalid address", n.PublicKey[:4])
	}

	key := n.PublicKey
	return codec.Record{ip, uint64(n.Port), key[:]}, nil
}

func nodeInfoFromRecord(rec codec.Record) NodeInfo {
	ip := rec.Variant(0)
	n := NodeInfo{
		TCP:  ip.Fields.Uint(0) == 1,
		Port: uint16(rec.Uint(1)),
	}
	addr, _ := netip.AddrFromSlice(ip.Fields.Bytes(1))
	n.Addr = addr
	copy(n.PublicKey[:], rec.Bytes(2))
	return n
}
