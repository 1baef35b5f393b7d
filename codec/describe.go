package codec

import (
	"encoding/hex"
	"fmt"
)

// NamedValue is one entry of a described record. Value is a uint64, a hex
// string for byte arrays, []NamedValue for a choice alternative, or
// [][]NamedValue for the rows of a repeated group.
type NamedValue struct {
	Name  string
	Value interface{}
}

// Describe pairs the values of rec with the names in f, for logging and
// display.
func Describe[F any](f *Format[F], rec Record) ([]NamedValue, error) {
	out, n, err := describeList(f.elems, rec, 0)
	if err != nil {
		return nil, err
	}
	if n != len(rec) {
		return nil, fmt.Errorf("describe %s: %d values, layout uses %d", f.name, len(rec), n)
	}
	return out, nil
}

func describeList(elems []Element, rec Record, idx int) ([]NamedValue, int, error) {
	var out []NamedValue
	for _, el := range elems {
		switch el := el.(type) {
		case Literal:
		case Field:
			if idx >= len(rec) {
				return nil, idx, fmt.Errorf("missing value for %q", el.Name)
			}
			out = append(out, NamedValue{Name: el.Name, Value: describeValue(rec[idx])})
			idx++
		case Bitfield:
			for _, m := range el.Members {
				if m.Const {
					continue
				}
				if idx >= len(rec) {
					return nil, idx, fmt.Errorf("missing value for %q", m.Name)
				}
				out = append(out, NamedValue{Name: m.Name, Value: describeValue(rec[idx])})
				idx++
			}
		case Encrypted:
			inner, n, err := describeList(el.Fields, rec, idx)
			if err != nil {
				return nil, n, err
			}
			out = append(out, inner...)
			idx = n
		case Repeated:
			if idx >= len(rec) {
				return nil, idx, fmt.Errorf("missing value for %q", el.Name)
			}
			rows, ok := rec[idx].([]Record)
			if !ok {
				return nil, idx, fmt.Errorf("%q is %T, not []Record", el.Name, rec[idx])
			}
			described := make([][]NamedValue, 0, len(rows))
			for _, row := range rows {
				d, _, err := describeList(el.Fields, row, 0)
				if err != nil {
					return nil, idx, err
				}
				described = append(described, d)
			}
			out = append(out, NamedValue{Name: el.Name, Value: described})
			idx++
		case Choice:
			if idx >= len(rec) {
				return nil, idx, fmt.Errorf("missing value for %q", el.Name)
			}
			v, ok := rec[idx].(Variant)
			if !ok || v.Index < 0 || v.Index >= len(el.Alternatives) {
				return nil, idx, fmt.Errorf("%q holds no valid variant", el.Name)
			}
			alt := el.Alternatives[v.Index]
			d, _, err := describeList(alt.Fields, v.Fields, 0)
			if err != nil {
				return nil, idx, err
			}
			out = append(out, NamedValue{Name: el.Name, Value: []NamedValue{{Name: alt.Name, Value: d}}})
			idx++
		}
	}
	return out, idx, nil
}

func describeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return hex.EncodeToString(b)
	}
	if u, ok := toUint64(v); ok {
		return u
	}
	return v
}
