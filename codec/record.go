package codec

import "fmt"

// Record holds the values of a layout in order. See the package
// documentation for the value types.
type Record []interface{}

// Variant is the value of a Choice: the index of the active alternative and
// that alternative's own record. Name is filled in by the decoder.
type Variant struct {
	Index  int
	Name   string
	Fields Record
}

// Uint returns entry i as an integer. It panics if the entry has another
// type, which indicates a mismatch between a layout and the code reading it.
func (r Record) Uint(i int) uint64 {
	v, ok := r[i].(uint64)
	if !ok {
		panic(fmt.Sprintf("codec: record entry %d is %T, not uint64", i, r[i]))
	}
	return v
}

// Bytes returns entry i as a byte array.
func (r Record) Bytes(i int) []byte {
	v, ok := r[i].([]byte)
	if !ok {
		panic(fmt.Sprintf("codec: record entry %d is %T, not []byte", i, r[i]))
	}
	return v
}

// Rows returns entry i as the rows of a repeated group.
func (r Record) Rows(i int) []Record {
	v, ok := r[i].([]Record)
	if !ok {
		panic(fmt.Sprintf("codec: record entry %d is %T, not []Record", i, r[i]))
	}
	return v
}

// Variant returns entry i as a choice value.
func (r Record) Variant(i int) Variant {
	v, ok := r[i].(Variant)
	if !ok {
		panic(fmt.Sprintf("codec: record entry %d is %T, not Variant", i, r[i]))
	}
	return v
}

// toUint64 accepts the unsigned integer types and non-negative ints so
// callers need not convert every field by hand.
func toUint64(v interface{}) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case uint32:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint:
		return uint64(x), true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	}
	return 0, false
}

// fits reports whether v can be represented in width bits.
func fits(v uint64, width int) bool {
	return width >= 64 || v < uint64(1)<<uint(width)
}
