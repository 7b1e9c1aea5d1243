package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMintType is returned when a mint type selector is neither member nor council.
var ErrInvalidMintType = errors.New("invalid mint type")

// MintType selects which governing token of a realm an action operates with.
type MintType uint8

const (
	// MintTypeMember selects the realm's community mint.
	MintTypeMember MintType = iota
	// MintTypeCouncil selects the realm's council mint.
	MintTypeCouncil
)

// StringToMintType converts a lower case selector to a MintType.
var StringToMintType = map[string]MintType{
	"member":  MintTypeMember,
	"council": MintTypeCouncil,
}

// ParseMintType parses a mint type selector, ignoring case.
func ParseMintType(s string) (MintType, error) {
	mt, ok := StringToMintType[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want member or council)", ErrInvalidMintType, s)
	}

	return mt, nil
}

func (m MintType) String() string {
	switch m {
	case MintTypeMember:
		return "member"
	case MintTypeCouncil:
		return "council"
	default:
		return fmt.Sprintf("MintType(%d)", uint8(m))
	}
}

// Set implements pflag.Value.
func (m *MintType) Set(s string) error {
	mt, err := ParseMintType(s)
	if err != nil {
		return err
	}
	*m = mt

	return nil
}

// Type implements pflag.Value.
func (m *MintType) Type() string {
	return "mint-type"
}

func (m MintType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MintType) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}
