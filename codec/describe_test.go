package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type describeTag struct{}

func TestDescribe(t *testing.T) {
	f := MustNew[describeTag]("describe",
		Tag8(1),
		Bytes("key", 2),
		Repeat("nodes", 8, 0,
			OneOf("ip",
				Alt("ipv4", Bits(Flag("tcp", 1), ConstBits(7, 2)), Bytes("addr", 4)),
				Alt("ipv6", Bits(Flag("tcp", 1), ConstBits(7, 10)), Bytes("addr", 16)),
			),
			Uint16("port"),
		),
		Sealed(Uint64("ping_id")),
	)

	rec := Record{
		[]byte{0xab, 0xcd},
		[]Record{{Variant{Index: 0, Fields: Record{uint64(1), []byte{127, 0, 0, 1}}}, uint64(33445)}},
		uint64(7),
	}

	got, err := Describe(f, rec)
	require.NoError(t, err)
	want := []NamedValue{
		{Name: "key", Value: "abcd"},
		{Name: "nodes", Value: [][]NamedValue{{
			{Name: "ip", Value: []NamedValue{{Name: "ipv4", Value: []NamedValue{
				{Name: "tcp", Value: uint64(1)},
				{Name: "addr", Value: "7f000001"},
			}}}},
			{Name: "port", Value: uint64(33445)},
		}}},
		{Name: "ping_id", Value: uint64(7)},
	}
	assert.Equal(t, want, got)

	_, err = Describe(f, rec[:2])
	assert.Error(t, err)
	_, err = Describe(f, append(rec, uint64(1)))
	assert.Error(t, err)
}
