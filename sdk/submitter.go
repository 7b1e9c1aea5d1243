package sdk

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/types"
)

// Submitter executes an ordered instruction list as one atomic transaction.
//
// The first signer pays the fee. Implementations block until the cluster reports a terminal
// outcome or ctx is done.
type Submitter interface {
	Submit(ctx context.Context, instructions []solana.Instruction, signers ...solana.PrivateKey) (types.TransactionResult, error)
}
