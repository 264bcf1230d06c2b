package model

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire layout, protobuf encoded:
//
//	1  magic        bytes   "punkt-model"
//	2  version      varint
//	3  thresholds   message {1 abbrev, 2 collocation, 3 sent_starter (fixed64 floats),
//	                         4 abbrev_backoff, 5 min_abbrev_frequency, 6 min_colloc_freq (varint)}
//	4  abbreviation string  (repeated)
//	5  collocation  message {1 first, 2 second} (repeated)
//	6  sent_starter string  (repeated)
//	7  ortho        message {1 type, 2 flags} (repeated)
//	15 checksum     fixed32 CRC-32 (IEEE) of every preceding byte; always last
const (
	fieldMagic       protowire.Number = 1
	fieldVersion     protowire.Number = 2
	fieldThresholds  protowire.Number = 3
	fieldAbbrev      protowire.Number = 4
	fieldCollocation protowire.Number = 5
	fieldStarter     protowire.Number = 6
	fieldOrtho       protowire.Number = 7
	fieldChecksum    protowire.Number = 15

	codecVersion = 1
)

var magic = []byte("punkt-model")

// Marshal encodes m. Output is deterministic: sets are written sorted.
func Marshal(m *Model) ([]byte, error) {
	if !m.Trained() {
		return nil, ErrNotTrained
	}

	var b []byte
	b = protowire.AppendTag(b, fieldMagic, protowire.BytesType)
	b = protowire.AppendBytes(b, magic)
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, codecVersion)

	b = protowire.AppendTag(b, fieldThresholds, protowire.BytesType)
	b = protowire.AppendBytes(b, appendThresholds(nil, m.thresholds))

	for _, typ := range m.Abbreviations() {
		b = protowire.AppendTag(b, fieldAbbrev, protowire.BytesType)
		b = protowire.AppendString(b, typ)
	}
	for _, p := range m.Collocations() {
		var msg []byte
		msg = protowire.AppendTag(msg, 1, protowire.BytesType)
		msg = protowire.AppendString(msg, p.First)
		msg = protowire.AppendTag(msg, 2, protowire.BytesType)
		msg = protowire.AppendString(msg, p.Second)
		b = protowire.AppendTag(b, fieldCollocation, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	for _, typ := range m.SentStarters() {
		b = protowire.AppendTag(b, fieldStarter, protowire.BytesType)
		b = protowire.AppendString(b, typ)
	}
	for _, typ := range m.OrthoTypes() {
		var msg []byte
		msg = protowire.AppendTag(msg, 1, protowire.BytesType)
		msg = protowire.AppendString(msg, typ)
		msg = protowire.AppendTag(msg, 2, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(m.ortho[typ]))
		b = protowire.AppendTag(b, fieldOrtho, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}

	sum := crc32.ChecksumIEEE(b)
	b = protowire.AppendTag(b, fieldChecksum, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, sum)
	return b, nil
}

func appendThresholds(b []byte, t Thresholds) []byte {
	for i, f := range []float64{t.Abbrev, t.Collocation, t.SentStarter} {
		b = protowire.AppendTag(b, protowire.Number(i+1), protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(f))
	}
	for i, n := range []int{t.AbbrevBackoff, t.MinAbbrevFrequency, t.MinCollocFreq} {
		b = protowire.AppendTag(b, protowire.Number(i+4), protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(n)))
	}
	return b
}

// Unmarshal decodes a blob produced by Marshal. Blobs that are not models
// fail with ErrFormat; damaged models fail with ErrCorrupt. A partially
// decoded model is never returned.
func Unmarshal(b []byte) (*Model, error) {
	rest, err := readHeader(b)
	if err != nil {
		return nil, err
	}

	p := NewParams()
	var (
		t             Thresholds
		haveThreshold bool
		haveChecksum  bool
	)
	for len(rest) > 0 {
		if haveChecksum {
			return nil, fmt.Errorf("%w: data after checksum", ErrCorrupt)
		}
		offset := len(b) - len(rest)
		num, typ, n := protowire.ConsumeTag(rest)
		if n < 0 {
			return nil, corrupt(n)
		}
		rest = rest[n:]

		switch {
		case num == fieldChecksum && typ == protowire.Fixed32Type:
			sum, n := protowire.ConsumeFixed32(rest)
			if n < 0 {
				return nil, corrupt(n)
			}
			rest = rest[n:]
			if want := crc32.ChecksumIEEE(b[:offset]); sum != want {
				return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
			}
			haveChecksum = true

		case typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return nil, corrupt(n)
			}
			rest = rest[n:]
			if err := decodeField(&p, &t, num, v); err != nil {
				return nil, err
			}
			if num == fieldThresholds {
				haveThreshold = true
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, rest)
			if n < 0 {
				return nil, corrupt(n)
			}
			rest = rest[n:]
		}
	}

	if !haveChecksum {
		return nil, fmt.Errorf("%w: missing checksum", ErrCorrupt)
	}
	if !haveThreshold {
		return nil, fmt.Errorf("%w: missing thresholds", ErrCorrupt)
	}
	return New(p, t), nil
}

// readHeader checks magic and version and returns the remaining bytes.
func readHeader(b []byte) ([]byte, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 || num != fieldMagic || typ != protowire.BytesType {
		return nil, fmt.Errorf("%w: missing magic", ErrFormat)
	}
	b = b[n:]
	v, n := protowire.ConsumeBytes(b)
	if n < 0 || !bytes.Equal(v, magic) {
		return nil, fmt.Errorf("%w: bad magic", ErrFormat)
	}
	b = b[n:]

	num, typ, n = protowire.ConsumeTag(b)
	if n < 0 || num != fieldVersion || typ != protowire.VarintType {
		return nil, fmt.Errorf("%w: missing version", ErrCorrupt)
	}
	b = b[n:]
	version, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, corrupt(n)
	}
	if version != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, version)
	}
	return b[n:], nil
}

func decodeField(p *Params, t *Thresholds, num protowire.Number, v []byte) error {
	switch num {
	case fieldThresholds:
		return decodeThresholds(t, v)
	case fieldAbbrev:
		p.Abbreviations[string(v)] = struct{}{}
	case fieldStarter:
		p.SentStarters[string(v)] = struct{}{}
	case fieldCollocation:
		fields, err := decodeStrings(v)
		if err != nil {
			return err
		}
		p.Collocations[Pair{First: fields[1], Second: fields[2]}] = struct{}{}
	case fieldOrtho:
		return decodeOrtho(p, v)
	}
	return nil
}

func decodeThresholds(t *Thresholds, b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return corrupt(n)
		}
		b = b[n:]
		switch typ {
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return corrupt(n)
			}
			b = b[n:]
			f := math.Float64frombits(v)
			switch num {
			case 1:
				t.Abbrev = f
			case 2:
				t.Collocation = f
			case 3:
				t.SentStarter = f
			}
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return corrupt(n)
			}
			b = b[n:]
			i := int(protowire.DecodeZigZag(v))
			switch num {
			case 4:
				t.AbbrevBackoff = i
			case 5:
				t.MinAbbrevFrequency = i
			case 6:
				t.MinCollocFreq = i
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return corrupt(n)
			}
			b = b[n:]
		}
	}
	return nil
}

func decodeOrtho(p *Params, b []byte) error {
	var (
		typ   string
		flags uint64
	)
	for len(b) > 0 {
		num, wt, n := protowire.ConsumeTag(b)
		if n < 0 {
			return corrupt(n)
		}
		b = b[n:]
		switch {
		case num == 1 && wt == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return corrupt(n)
			}
			typ, b = v, b[n:]
		case num == 2 && wt == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return corrupt(n)
			}
			flags, b = v, b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, wt, b)
			if n < 0 {
				return corrupt(n)
			}
			b = b[n:]
		}
	}
	if flags > math.MaxUint8 {
		return fmt.Errorf("%w: ortho flags out of range for %q", ErrCorrupt, typ)
	}
	p.OrthoContext[typ] = Ortho(flags)
	return nil
}

// decodeStrings reads a message of string fields keyed by field number.
func decodeStrings(b []byte) (map[protowire.Number]string, error) {
	out := make(map[protowire.Number]string, 2)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, corrupt(n)
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, corrupt(n)
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeString(b)
		if n < 0 {
			return nil, corrupt(n)
		}
		out[num], b = v, b[n:]
	}
	return out, nil
}

func corrupt(n int) error {
	return fmt.Errorf("%w: %w", ErrCorrupt, protowire.ParseError(n))
}

// IsDecodeError reports whether err came from Unmarshal rejecting its input.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrFormat) || errors.Is(err, ErrCorrupt)
}
