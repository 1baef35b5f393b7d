package codec

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/limits"
	"github.com/opd-ai/toxpacket/result"
	"github.com/opd-ai/toxpacket/wire"
)

// Encode serialises rec according to f. Encrypted regions are sealed with
// the box and nonce returned by keys. Values of the wrong type or size, and
// records with missing or surplus values, fail with result.Failure.
func Encode[F any](f *Format[F], rec Record, keys KeyResolver) (wire.CipherText[F], error) {
	buf, err := encodeFormat(f.name, f.elems, rec, keys)
	if err != nil {
		return wire.CipherText[F]{}, err
	}
	return wire.CipherText[F]{Buffer: buf}, nil
}

// EncodePlain serialises rec into a plaintext buffer. It is meant for formats
// without an encrypted region; any that exist are still sealed.
func EncodePlain[F any](f *Format[F], rec Record, keys KeyResolver) (wire.PlainText[F], error) {
	buf, err := encodeFormat(f.name, f.elems, rec, keys)
	if err != nil {
		return wire.PlainText[F]{}, err
	}
	return wire.PlainText[F]{Buffer: buf}, nil
}

func encodeFormat(name string, elems []Element, rec Record, keys KeyResolver) (wire.Buffer, error) {
	e := encoder{keys: keys}
	buf := wire.NewBuffer(limits.EnvelopeHeaderSize)
	n, err := e.encodeList(elems, rec, 0, &buf)
	if err == nil && n != len(rec) {
		err = result.Errorf(result.Failure, "%d values supplied, layout uses %d", len(rec), n)
	}
	if err != nil {
		observeEncode(name, err)
		logrus.WithFields(logrus.Fields{
			"function": "Encode",
			"format":   name,
			"error":    err.Error(),
		}).Debug("Packet encode failed")
		return wire.Buffer{}, err
	}
	observeEncode(name, nil)
	return buf, nil
}

type encoder struct {
	keys KeyResolver
}

// encodeList appends elems to out, reading values from rec starting at idx.
// It returns the index of the first unused value.
func (e *encoder) encodeList(elems []Element, rec Record, idx int, out *wire.Buffer) (int, error) {
	for _, el := range elems {
		var err error
		switch el := el.(type) {
		case Literal:
			appendUint(out, el.Bits, el.Value)
		case Field:
			idx, err = e.encodeField(el, rec, idx, out)
		case Bitfield:
			idx, err = e.encodeBitfield(el, rec, idx, out)
		case Encrypted:
			idx, err = e.encodeEncrypted(el, rec, idx, out)
		case Repeated:
			idx, err = e.encodeRepeated(el, rec, idx, out)
		case Choice:
			idx, err = e.encodeChoice(el, rec, idx, out)
		}
		if err != nil {
			return idx, err
		}
	}
	return idx, nil
}

func take(rec Record, idx int, name string) (interface{}, error) {
	if idx >= len(rec) {
		return nil, result.Errorf(result.Failure, "missing value for %q", name)
	}
	return rec[idx], nil
}

func (e *encoder) encodeField(f Field, rec Record, idx int, out *wire.Buffer) (int, error) {
	v, err := take(rec, idx, f.Name)
	if err != nil {
		return idx, err
	}

	if f.Size > 0 {
		b, ok := v.([]byte)
		if !ok {
			return idx, result.Errorf(result.Failure, "field %q wants []byte, got %T", f.Name, v)
		}
		if len(b) != f.Size {
			return idx, result.Errorf(result.Failure, "field %q wants %d bytes, got %d", f.Name, f.Size, len(b))
		}
		out.Append(b)
		return idx + 1, nil
	}

	u, ok := toUint64(v)
	if !ok {
		return idx, result.Errorf(result.Failure, "field %q wants an unsigned integer, got %T", f.Name, v)
	}
	if !fits(u, f.Bits) {
		return idx, result.Errorf(result.Failure, "field %q value %d overflows %d bits", f.Name, u, f.Bits)
	}
	appendUint(out, f.Bits, u)
	return idx + 1, nil
}

func (e *encoder) encodeBitfield(b Bitfield, rec Record, idx int, out *wire.Buffer) (int, error) {
	var acc uint64
	total := 0
	for _, m := range b.Members {
		val := m.Value
		if !m.Const {
			v, err := take(rec, idx, m.Name)
			if err != nil {
				return idx, err
			}
			u, ok := toUint64(v)
			if !ok {
				return idx, result.Errorf(result.Failure, "bit member %q wants an unsigned integer, got %T", m.Name, v)
			}
			if !fits(u, m.Width) {
				return idx, result.Errorf(result.Failure, "bit member %q value %d overflows %d bits", m.Name, u, m.Width)
			}
			val = u
			idx++
		}
		if m.Width == 64 {
			acc = val
		} else {
			acc = acc<<uint(m.Width) | val
		}
		total += m.Width
	}
	for shift := total - 8; shift >= 0; shift -= 8 {
		out.AppendByte(byte(acc >> uint(shift)))
	}
	return idx, nil
}

func (e *encoder) encodeEncrypted(enc Encrypted, rec Record, idx int, out *wire.Buffer) (int, error) {
	box, nonce, err := resolveKeys(e.keys, rec[:idx])
	if err != nil {
		return idx, err
	}

	inner := wire.NewBuffer(64)
	idx, err = e.encodeList(enc.Fields, rec, idx, &inner)
	if err != nil {
		return idx, err
	}
	if inner.Len() > limits.MaxPlaintextRegion {
		return idx, result.Errorf(result.Failure, "sealed region of %d bytes exceeds %d", inner.Len(), limits.MaxPlaintextRegion)
	}

	sealed := crypto.Seal(box, wire.PlainText[sealedRegion]{Buffer: inner}, nonce)
	out.Append(sealed.Bytes())
	return idx, nil
}

func (e *encoder) encodeRepeated(r Repeated, rec Record, idx int, out *wire.Buffer) (int, error) {
	v, err := take(rec, idx, r.Name)
	if err != nil {
		return idx, err
	}
	rows, ok := v.([]Record)
	if !ok {
		return idx, result.Errorf(result.Failure, "repeated %q wants []Record, got %T", r.Name, v)
	}
	count := uint64(len(rows))
	if count > maxCount(r) {
		return idx, result.Errorf(result.Failure, "repeated %q has %d entries, limit %d", r.Name, count, maxCount(r))
	}

	appendUint(out, r.CountBits, count)
	for i, row := range rows {
		n, err := e.encodeList(r.Fields, row, 0, out)
		if err != nil {
			return idx, err
		}
		if n != len(row) {
			return idx, result.Errorf(result.Failure, "repeated %q entry %d has %d values, layout uses %d", r.Name, i, len(row), n)
		}
	}
	return idx + 1, nil
}

func (e *encoder) encodeChoice(c Choice, rec Record, idx int, out *wire.Buffer) (int, error) {
	v, err := take(rec, idx, c.Name)
	if err != nil {
		return idx, err
	}
	variant, ok := v.(Variant)
	if !ok {
		return idx, result.Errorf(result.Failure, "choice %q wants Variant, got %T", c.Name, v)
	}
	if variant.Index < 0 || variant.Index >= len(c.Alternatives) {
		return idx, result.Errorf(result.Failure, "choice %q has no alternative %d", c.Name, variant.Index)
	}

	alt := c.Alternatives[variant.Index]
	n, err := e.encodeList(alt.Fields, variant.Fields, 0, out)
	if err != nil {
		return idx, err
	}
	if n != len(variant.Fields) {
		return idx, result.Errorf(result.Failure, "choice %q alternative %q has %d values, layout uses %d", c.Name, alt.Name, len(variant.Fields), n)
	}
	return idx + 1, nil
}

func appendUint(out *wire.Buffer, bits int, v uint64) {
	switch bits {
	case 8:
		out.AppendByte(byte(v))
	case 16:
		out.AppendUint16(uint16(v))
	case 32:
		out.AppendUint32(uint32(v))
	case 64:
		out.AppendUint64(v)
	}
}

// maxCount is the largest entry count r accepts.
func maxCount(r Repeated) uint64 {
	if r.Max > 0 {
		return uint64(r.Max)
	}
	if r.CountBits >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(r.CountBits) - 1
}
