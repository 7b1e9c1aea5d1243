package themis

import (
	"context"

	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

// Deposit moves amount of the selected governing mint from the caller's associated token account
// into the realm.
func (g *Governor) Deposit(ctx context.Context, mintType types.MintType, amount uint64) (types.TransactionResult, error) {
	if amount == 0 {
		return types.TransactionResult{}, sdkerrors.NewUsageError("deposit amount must be greater than 0")
	}

	mint, err := g.governingMint(ctx, mintType)
	if err != nil {
		return types.TransactionResult{}, err
	}
	ix, err := g.builder.Deposit(mint, g.caller(), amount)
	if err != nil {
		return types.TransactionResult{}, err
	}

	return g.submit(ctx, "deposit", []solana.Instruction{ix})
}

// Withdraw returns the caller's whole deposit of the selected governing mint.
func (g *Governor) Withdraw(ctx context.Context, mintType types.MintType) (types.TransactionResult, error) {
	mint, err := g.governingMint(ctx, mintType)
	if err != nil {
		return types.TransactionResult{}, err
	}
	ix, err := g.builder.Withdraw(mint, g.caller())
	if err != nil {
		return types.TransactionResult{}, err
	}

	return g.submit(ctx, "withdraw", []solana.Instruction{ix})
}
