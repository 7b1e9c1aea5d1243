// Package layout describes fixed-offset binary account layouts and decodes raw account data
// against them, so that the offsets a decoder reads and the offsets a query filters on come from
// the same table.
package layout

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Rule is the decode rule applied to a field's bytes.
type Rule int

const (
	// RuleUint32LE decodes 4 little-endian bytes into a uint32.
	RuleUint32LE Rule = iota
	// RuleFlag decodes a single byte that must be 0 or 1.
	RuleFlag
	// RulePublicKey decodes 32 bytes into a solana.PublicKey.
	RulePublicKey
)

func (r Rule) width() int {
	switch r {
	case RuleUint32LE:
		return 4
	case RuleFlag:
		return 1
	case RulePublicKey:
		return solana.PublicKeyLength
	default:
		return 0
	}
}

func (r Rule) String() string {
	switch r {
	case RuleUint32LE:
		return "u32le"
	case RuleFlag:
		return "flag"
	case RulePublicKey:
		return "pubkey"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

var (
	ErrTruncated    = errors.New("data too short")
	ErrInvalidFlag  = errors.New("invalid flag value")
	ErrUnknownField = errors.New("unknown field")
)

// Field is one entry of a Layout.
type Field struct {
	Name   string
	Offset int
	Width  int
	Rule   Rule
	// PresentIf names a flag field that gates this field; when the flag is unset the field is
	// absent from the decoded values and its bytes are not read.
	PresentIf string
}

func (f Field) end() int {
	return f.Offset + f.Width
}

// Layout is a versioned, ordered description of a fixed-offset record.
type Layout struct {
	Name    string
	Version uint8
	Fields  []Field
}

// Validate checks that every field's width matches its rule and that gating flags precede the
// fields they gate.
func (l Layout) Validate() error {
	seen := make(map[string]Field, len(l.Fields))
	for _, f := range l.Fields {
		if f.Width != f.Rule.width() {
			return fmt.Errorf("%s v%d: field %q has width %d, rule %s needs %d",
				l.Name, l.Version, f.Name, f.Width, f.Rule, f.Rule.width())
		}
		if f.PresentIf != "" {
			gate, ok := seen[f.PresentIf]
			if !ok || gate.Rule != RuleFlag {
				return fmt.Errorf("%s v%d: field %q gated by %q which is not a preceding flag",
					l.Name, l.Version, f.Name, f.PresentIf)
			}
		}
		seen[f.Name] = f
	}

	return nil
}

// Field returns the named field.
func (l Layout) Field(name string) (Field, error) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, nil
		}
	}

	return Field{}, fmt.Errorf("%s v%d: %w %q", l.Name, l.Version, ErrUnknownField, name)
}

// MustField is like Field but panics if the field is not part of the layout. It is meant for
// package-level tables built from a fixed Layout.
func (l Layout) MustField(name string) Field {
	f, err := l.Field(name)
	if err != nil {
		panic(err)
	}

	return f
}

// Len is the number of bytes spanned by the layout when every optional field is present.
func (l Layout) Len() int {
	n := 0
	for _, f := range l.Fields {
		n = max(n, f.end())
	}

	return n
}

// Decode applies the layout to data. Bytes past the last field are ignored.
func (l Layout) Decode(data []byte) (Values, error) {
	values := make(Values, len(l.Fields))
	for _, f := range l.Fields {
		if f.PresentIf != "" {
			present, ok := values[f.PresentIf].(bool)
			if !ok || !present {
				continue
			}
		}

		if len(data) < f.end() {
			return nil, fmt.Errorf("%s v%d: field %q needs bytes [%d:%d], got %d: %w",
				l.Name, l.Version, f.Name, f.Offset, f.end(), len(data), ErrTruncated)
		}

		raw := data[f.Offset:f.end()]
		switch f.Rule {
		case RuleUint32LE:
			values[f.Name] = binary.LittleEndian.Uint32(raw)
		case RuleFlag:
			switch raw[0] {
			case 0:
				values[f.Name] = false
			case 1:
				values[f.Name] = true
			default:
				return nil, fmt.Errorf("%s v%d: field %q = %d: %w", l.Name, l.Version, f.Name, raw[0], ErrInvalidFlag)
			}
		case RulePublicKey:
			values[f.Name] = solana.PublicKeyFromBytes(raw)
		default:
			return nil, fmt.Errorf("%s v%d: field %q has unsupported rule %s", l.Name, l.Version, f.Name, f.Rule)
		}
	}

	return values, nil
}

// Values holds decoded fields keyed by name. Absent optional fields have no entry.
type Values map[string]any

func (v Values) Uint32(name string) (uint32, bool) {
	value, ok := v[name].(uint32)
	return value, ok
}

func (v Values) Flag(name string) (bool, bool) {
	value, ok := v[name].(bool)
	return value, ok
}

func (v Values) PublicKey(name string) (solana.PublicKey, bool) {
	value, ok := v[name].(solana.PublicKey)
	return value, ok
}
