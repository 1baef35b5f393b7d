package codec

// Element is one entry of a packet layout. The set of implementations is
// closed: Literal, Field, Bitfield, Encrypted, Repeated and Choice.
type Element interface {
	element()
}

// Literal is a constant tag of Bits width.
type Literal struct {
	Bits  int
	Value uint64
}

// Field carries one value: an unsigned integer of Bits width, or a byte array
// of Size bytes. Exactly one of Bits and Size is set.
type Field struct {
	Name string
	Bits int
	Size int
}

// Bit is a member of a Bitfield. Constant members consume no record value.
type Bit struct {
	Name  string
	Width int
	Const bool
	Value uint64
}

// Bitfield packs its members most significant bit first.
type Bitfield struct {
	Members []Bit
}

// Encrypted is a region sealed with the box and nonce returned by the
// KeyResolver. It must be the last element of its list.
type Encrypted struct {
	Fields []Element
}

// Repeated is a CountBits-wide count followed by that many copies of Fields.
// A positive Max bounds the count on both encode and decode.
type Repeated struct {
	Name      string
	CountBits int
	Max       int
	Fields    []Element
}

// Alternative is one arm of a Choice.
type Alternative struct {
	Name   string
	Fields []Element
}

// Choice is a tagged union discriminated by each alternative's leading tag.
type Choice struct {
	Name         string
	Alternatives []Alternative
}

func (Literal) element()   {}
func (Field) element()     {}
func (Bitfield) element()  {}
func (Encrypted) element() {}
func (Repeated) element()  {}
func (Choice) element()    {}

// Tag is a literal of the given width.
func Tag(bits int, value uint64) Literal {
	return Literal{Bits: bits, Value: value}
}

// Tag8 is a one-byte literal.
func Tag8(value byte) Literal {
	return Literal{Bits: 8, Value: uint64(value)}
}

// Uint8 is a one-byte integer field.
func Uint8(name string) Field { return Field{Name: name, Bits: 8} }

// Uint16 is a big-endian two-byte integer field.
func Uint16(name string) Field { return Field{Name: name, Bits: 16} }

// Uint32 is a big-endian four-byte integer field.
func Uint32(name string) Field { return Field{Name: name, Bits: 32} }

// Uint64 is a big-endian eight-byte integer field.
func Uint64(name string) Field { return Field{Name: name, Bits: 64} }

// Bytes is a fixed-size byte array field.
func Bytes(name string, size int) Field { return Field{Name: name, Size: size} }

// Bits groups members into a bitfield.
func Bits(members ...Bit) Bitfield {
	return Bitfield{Members: members}
}

// Flag is a value-carrying bitfield member.
func Flag(name string, width int) Bit {
	return Bit{Name: name, Width: width}
}

// ConstBits is a constant bitfield member.
func ConstBits(width int, value uint64) Bit {
	return Bit{Width: width, Const: true, Value: value}
}

// Sealed wraps fields in an encrypted region.
func Sealed(fields ...Element) Encrypted {
	return Encrypted{Fields: fields}
}

// Repeat declares a count-prefixed group.
func Repeat(name string, countBits, max int, fields ...Element) Repeated {
	return Repeated{Name: name, CountBits: countBits, Max: max, Fields: fields}
}

// OneOf declares a choice between alternatives.
func OneOf(name string, alternatives ...Alternative) Choice {
	return Choice{Name: name, Alternatives: alternatives}
}

// Alt declares one alternative of a choice.
func Alt(name string, fields ...Element) Alternative {
	return Alternative{Name: name, Fields: fields}
}
