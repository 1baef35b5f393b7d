package codec

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/limits"
	"github.com/opd-ai/toxpacket/result"
	"github.com/opd-ai/toxpacket/wire"
)

// Decode parses ct according to f. It stops at the first failure:
// result.FormatError for a mismatched tag or an out-of-range count,
// result.HMACError for an encrypted region that fails authentication,
// result.Truncated for short input, result.Failure when no keys are
// available, and result.TrailingData for leftovers in strict mode.
func Decode[F any](f *Format[F], ct wire.CipherText[F], opts Options) result.Partial[Record] {
	return decodeFormat(f.name, f.elems, ct.Bytes(), opts)
}

// DecodePlain parses a plaintext buffer according to f.
func DecodePlain[F any](f *Format[F], pt wire.PlainText[F], opts Options) result.Partial[Record] {
	return decodeFormat(f.name, f.elems, pt.Bytes(), opts)
}

func decodeFormat(name string, elems []Element, data []byte, opts Options) result.Partial[Record] {
	d := decoder{opts: opts}
	var rec Record
	err := d.checkSize(data)
	if err == nil {
		var s wire.BitStream
		rec, s, err = d.decodeList(elems, wire.NewBitStream(data), make(Record, 0, len(elems)))
		if err == nil {
			err = d.checkEnd(s)
		}
	}
	observeDecode(name, err)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Decode",
			"format":   name,
			"status":   result.CodeOf(err).String(),
			"error":    err.Error(),
		}).Debug("Packet decode failed")
		return result.Fail[Record](err)
	}
	return result.Success(rec)
}

type decoder struct {
	opts Options
}

// checkSize applies Options.MinSize and Options.MaxSize.
func (d *decoder) checkSize(data []byte) error {
	if d.opts.MaxSize > 0 {
		if err := limits.ValidateSize(data, d.opts.MaxSize); err != nil {
			if errors.Is(err, limits.ErrPacketEmpty) {
				return result.Wrap(result.Truncated, err, "%v", err)
			}
			return result.Wrap(result.FormatError, err, "%v", err)
		}
	}
	if d.opts.MinSize > 0 && len(data) < d.opts.MinSize {
		err := limits.ErrPacketTooSmall
		if len(data) == 0 {
			err = limits.ErrPacketEmpty
		}
		return result.Wrap(result.Truncated, err, "%v: size %d below %d", err, len(data), d.opts.MinSize)
	}
	return nil
}

func (d *decoder) checkEnd(s wire.BitStream) error {
	if d.opts.Strict && !s.AtEnd() {
		return result.Errorf(result.TrailingData, "%d unread bytes", s.Remaining()/8)
	}
	return nil
}

// decodeList reads elems from s, appending values to rec.
func (d *decoder) decodeList(elems []Element, s wire.BitStream, rec Record) (Record, wire.BitStream, error) {
	for _, el := range elems {
		var err error
		switch el := el.(type) {
		case Literal:
			var v uint64
			v, s, err = s.ReadUint(el.Bits)
			if err == nil && v != el.Value {
				err = result.Errorf(result.FormatError, "expected tag %#x, got %#x", el.Value, v)
			}
		case Field:
			rec, s, err = d.decodeField(el, s, rec)
		case Bitfield:
			rec, s, err = d.decodeBitfield(el, s, rec)
		case Encrypted:
			rec, s, err = d.decodeEncrypted(el, s, rec)
		case Repeated:
			rec, s, err = d.decodeRepeated(el, s, rec)
		case Choice:
			rec, s, err = d.decodeChoice(el, s, rec)
		}
		if err != nil {
			return rec, s, err
		}
	}
	return rec, s, nil
}

func (d *decoder) decodeField(f Field, s wire.BitStream, rec Record) (Record, wire.BitStream, error) {
	if f.Size > 0 {
		b, next, err := s.ReadBytes(f.Size)
		if err != nil {
			return rec, s, err
		}
		return append(rec, b), next, nil
	}
	v, s, err := s.ReadUint(f.Bits)
	if err != nil {
		return rec, s, err
	}
	return append(rec, v), s, nil
}

func (d *decoder) decodeBitfield(b Bitfield, s wire.BitStream, rec Record) (Record, wire.BitStream, error) {
	for _, m := range b.Members {
		v, next, err := s.ReadUint(m.Width)
		if err != nil {
			return rec, s, err
		}
		if m.Const {
			if v != m.Value {
				return rec, s, result.Errorf(result.FormatError, "expected %d-bit tag %#x, got %#x", m.Width, m.Value, v)
			}
		} else {
			rec = append(rec, v)
		}
		s = next
	}
	return rec, s, nil
}

func (d *decoder) decodeEncrypted(enc Encrypted, s wire.BitStream, rec Record) (Record, wire.BitStream, error) {
	box, nonce, err := resolveKeys(d.opts.Keys, rec)
	if err != nil {
		return rec, s, err
	}

	data, rest := s.Rest()
	opened := crypto.Open(box, wire.NewCipherText[sealedRegion](data), nonce)
	if !opened.Ok() {
		return rec, s, opened.Err()
	}

	rec, inner, err := d.decodeList(enc.Fields, opened.Value().Stream(), rec)
	if err != nil {
		return rec, s, err
	}
	if err := d.checkEnd(inner); err != nil {
		return rec, s, err
	}
	return rec, rest, nil
}

func (d *decoder) decodeRepeated(r Repeated, s wire.BitStream, rec Record) (Record, wire.BitStream, error) {
	count, s, err := s.ReadUint(r.CountBits)
	if err != nil {
		return rec, s, err
	}
	if count > maxCount(r) {
		return rec, s, result.Errorf(result.FormatError, "repeated %q count %d exceeds limit %d", r.Name, count, maxCount(r))
	}

	// Counts come off the wire, so the allocation hint is capped.
	hint := count
	if hint > 64 {
		hint = 64
	}
	rows := make([]Record, 0, hint)
	for i := uint64(0); i < count; i++ {
		var row Record
		row, s, err = d.decodeList(r.Fields, s, nil)
		if err != nil {
			return rec, s, err
		}
		rows = append(rows, row)
	}
	return append(rec, rows), s, nil
}

// decodeChoice tries each alternative in declaration order and commits to
// the first whose leading tag decodes. A tag that mismatches
// (result.FormatError) or runs past the input (result.Truncated) moves on to
// the next alternative; any failure after the tag matched ends decoding. If
// no alternative matches, the result is Truncated when some tag ran out of
// input and FormatError otherwise.
func (d *decoder) decodeChoice(c Choice, s wire.BitStream, rec Record) (Record, wire.BitStream, error) {
	var truncated error
	for i, alt := range c.Alternatives {
		row, next, err := d.decodeList(alt.Fields[:1], s, nil)
		if errors.Is(err, result.FormatError) {
			continue
		}
		if errors.Is(err, result.Truncated) {
			if truncated == nil {
				truncated = err
			}
			continue
		}
		if err != nil {
			return rec, s, err
		}

		row, next, err = d.decodeList(alt.Fields[1:], next, row)
		if err != nil {
			return rec, s, err
		}
		return append(rec, Variant{Index: i, Name: alt.Name, Fields: row}), next, nil
	}
	if truncated != nil {
		return rec, s, truncated
	}
	return rec, s, result.Errorf(result.FormatError, "no alternative of choice %q matched", c.Name)
}
