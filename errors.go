package themis

import (
	"errors"
)

var (
	// ErrProposalSelectorMissing is returned when neither a proposal id nor latest is given.
	ErrProposalSelectorMissing = errors.New("either a proposal id or --latest must be provided")

	// ErrNoProposals is returned when latest is requested on a governance without proposals.
	ErrNoProposals = errors.New("governance has no proposals")

	// ErrEmptyConfigPatch is returned when an update would not change the governance config.
	ErrEmptyConfigPatch = errors.New("no governance config field to update")

	// ErrNoBuffers is returned when there is no buffer to close.
	ErrNoBuffers = errors.New("no buffers found for the governance authority")

	ErrSignerRequired = errors.New("a signer keypair is required")
)
