package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"github.com/gagliardetto/solana-go"
)

// TransactionResult is the outcome of a lifecycle action.
// When the action ran in dry-run mode Hash is empty and RawData holds the instructions that
// would have been submitted.
type TransactionResult struct {
	Hash    string               `json:"hash"`
	Slot    uint64               `json:"slot,omitempty"`
	RawData []solana.Instruction `json:"-"`
}
