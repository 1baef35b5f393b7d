package codec

import (
	"fmt"

	"github.com/opd-ai/toxpacket/wire"
)

// Format is a validated layout. The type parameter F ties the format to the
// PlainText and CipherText buffers it produces and accepts.
type Format[F any] struct {
	name  string
	elems []Element
}

// New validates elems and returns the format. Validation enforces:
//
//   - literal and integer widths of 8, 16, 32 or 64 bits, and literal values
//     that fit their width;
//   - bitfield members of 1, 7, 8, 16, 32 or 64 bits totalling a whole
//     number of bytes (at most 64 bits), with whole-byte members aligned;
//   - encrypted regions, and choices that may end in one, only as the last
//     element of their list and never inside a repeated group;
//   - repeated groups with a supported count width and a Max that fits it;
//   - choice alternatives that each lead with a constant tag, where no two
//     alternatives' leading constant bits agree over the bits they share.
func New[F any](name string, elems ...Element) (*Format[F], error) {
	if len(elems) == 0 {
		return nil, fmt.Errorf("format %s: no elements", name)
	}
	if err := validateList(elems, name, false); err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return &Format[F]{name: name, elems: elems}, nil
}

// MustNew is New for package-level format declarations. It panics on an
// invalid layout.
func MustNew[F any](name string, elems ...Element) *Format[F] {
	f, err := New[F](name, elems...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name identifies the format in logs and metrics.
func (f *Format[F]) Name() string {
	return f.name
}

// Elements returns the top-level layout.
func (f *Format[F]) Elements() []Element {
	return f.elems
}

func integerWidth(bits int) bool {
	switch bits {
	case 8, 16, 32, 64:
		return true
	}
	return false
}

func validateList(elems []Element, path string, inRepeat bool) error {
	for i, el := range elems {
		where := fmt.Sprintf("%s[%d]", path, i)
		if endsOpen(el) && i != len(elems)-1 {
			return fmt.Errorf("%s: encrypted region must be the last element", where)
		}
		if err := validateElement(el, where, inRepeat); err != nil {
			return err
		}
	}
	return nil
}

func validateElement(el Element, where string, inRepeat bool) error {
	switch e := el.(type) {
	case Literal:
		if !integerWidth(e.Bits) {
			return fmt.Errorf("%s: unsupported literal width %d", where, e.Bits)
		}
		if !fits(e.Value, e.Bits) {
			return fmt.Errorf("%s: literal %#x does not fit in %d bits", where, e.Value, e.Bits)
		}
	case Field:
		switch {
		case e.Bits != 0 && e.Size != 0:
			return fmt.Errorf("%s: field %q sets both Bits and Size", where, e.Name)
		case e.Bits != 0 && !integerWidth(e.Bits):
			return fmt.Errorf("%s: field %q has unsupported width %d", where, e.Name, e.Bits)
		case e.Bits == 0 && e.Size <= 0:
			return fmt.Errorf("%s: field %q has no width", where, e.Name)
		}
	case Bitfield:
		return validateBitfield(e, where)
	case Encrypted:
		if inRepeat {
			return fmt.Errorf("%s: encrypted region inside a repeated group", where)
		}
		if len(e.Fields) == 0 {
			return fmt.Errorf("%s: empty encrypted region", where)
		}
		return validateList(e.Fields, where+".sealed", false)
	case Repeated:
		if !integerWidth(e.CountBits) {
			return fmt.Errorf("%s: repeated %q has unsupported count width %d", where, e.Name, e.CountBits)
		}
		if e.Max < 0 || !fits(uint64(e.Max), e.CountBits) {
			return fmt.Errorf("%s: repeated %q max %d does not fit its count", where, e.Name, e.Max)
		}
		if len(e.Fields) == 0 {
			return fmt.Errorf("%s: repeated %q has no fields", where, e.Name)
		}
		return validateList(e.Fields, where+"."+e.Name, true)
	case Choice:
		return validateChoice(e, where, inRepeat)
	default:
		return fmt.Errorf("%s: unknown element %T", where, el)
	}
	return nil
}

func validateBitfield(b Bitfield, where string) error {
	if len(b.Members) == 0 {
		return fmt.Errorf("%s: empty bitfield", where)
	}
	total := 0
	for _, m := range b.Members {
		if !wire.SupportedWidth(m.Width) {
			return fmt.Errorf("%s: bitfield member %q has unsupported width %d", where, m.Name, m.Width)
		}
		if m.Width >= 8 && total%8 != 0 {
			return fmt.Errorf("%s: bitfield member %q is not byte aligned", where, m.Name)
		}
		if m.Const && !fits(m.Value, m.Width) {
			return fmt.Errorf("%s: bitfield constant %#x does not fit in %d bits", where, m.Value, m.Width)
		}
		total += m.Width
	}
	if total%8 != 0 {
		return fmt.Errorf("%s: bitfield totals %d bits, not a whole number of bytes", where, total)
	}
	if total > 64 {
		return fmt.Errorf("%s: bitfield totals %d bits, more than 64", where, total)
	}
	return nil
}

func validateChoice(c Choice, where string, inRepeat bool) error {
	if len(c.Alternatives) == 0 {
		return fmt.Errorf("%s: choice %q has no alternatives", where, c.Name)
	}
	tags := make([]tagPattern, 0, len(c.Alternatives))
	for _, alt := range c.Alternatives {
		altWhere := where + "." + alt.Name
		if len(alt.Fields) == 0 {
			return fmt.Errorf("%s: empty alternative", altWhere)
		}
		if err := validateList(alt.Fields, altWhere, inRepeat); err != nil {
			return err
		}
		tag, ok := leadingTag(alt.Fields[0])
		if !ok {
			return fmt.Errorf("%s: alternative must start with a constant tag", altWhere)
		}
		for j, prev := range tags {
			if tag.overlaps(prev) {
				return fmt.Errorf("%s: leading tag overlaps alternative %q", altWhere, c.Alternatives[j].Name)
			}
		}
		tags = append(tags, tag)
	}
	return nil
}

// tagPattern is the leading bits of an alternative, most significant bit
// first. Bits set in mask are constant and must equal the same bits of value.
type tagPattern struct {
	width int
	mask  uint64
	value uint64
}

// leadingTag returns the pattern of el. It reports false when el has no
// constant bits.
func leadingTag(el Element) (tagPattern, bool) {
	switch e := el.(type) {
	case Literal:
		return tagPattern{width: e.Bits, mask: lowBits(e.Bits), value: e.Value}, true
	case Bitfield:
		var p tagPattern
		for _, m := range e.Members {
			p.width += m.Width
			p.mask <<= uint(m.Width)
			p.value <<= uint(m.Width)
			if m.Const {
				p.mask |= lowBits(m.Width)
				p.value |= m.Value
			}
		}
		return p, p.mask != 0
	}
	return tagPattern{}, false
}

// overlaps reports whether some input could satisfy both patterns: over the
// bits both patterns cover, no constant bit of one contradicts the other.
func (p tagPattern) overlaps(q tagPattern) bool {
	k := p.width
	if q.width < k {
		k = q.width
	}
	pm, pv := p.mask>>uint(p.width-k), p.value>>uint(p.width-k)
	qm, qv := q.mask>>uint(q.width-k), q.value>>uint(q.width-k)
	return (pv^qv)&pm&qm == 0
}

func lowBits(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}

// endsOpen reports whether el may run to the end of the input.
func endsOpen(el Element) bool {
	switch e := el.(type) {
	case Encrypted:
		return true
	case Choice:
		for _, alt := range e.Alternatives {
			if n := len(alt.Fields); n > 0 && endsOpen(alt.Fields[n-1]) {
				return true
			}
		}
	}
	return false
}
