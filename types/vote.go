package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidVote = errors.New("invalid vote")

// Vote is the caller's choice on a proposal.
type Vote uint8

const (
	VoteYes Vote = iota
	VoteNo
)

var stringToVote = map[string]Vote{
	"yes": VoteYes,
	"y":   VoteYes,
	"no":  VoteNo,
	"n":   VoteNo,
}

// ParseVote parses yes/no (or y/n), ignoring case.
func ParseVote(s string) (Vote, error) {
	v, ok := stringToVote[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want yes or no)", ErrInvalidVote, s)
	}

	return v, nil
}

func (v Vote) String() string {
	switch v {
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	default:
		return fmt.Sprintf("Vote(%d)", uint8(v))
	}
}

// Set implements pflag.Value.
func (v *Vote) Set(s string) error {
	parsed, err := ParseVote(s)
	if err != nil {
		return err
	}
	*v = parsed

	return nil
}

// Type implements pflag.Value.
func (v *Vote) Type() string {
	return "vote"
}
