package themis

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/sdk"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

// ExecuteRequest selects the proposal whose transaction is executed.
type ExecuteRequest struct {
	Selector ProposalSelector
	MintType types.MintType
}

// Execute runs the transaction stored at (option next index - 1, 0) of the selected proposal,
// where the next index is read from the proposal's first option. Whether the proposal is in a
// state that allows execution is left to the governance program.
func (g *Governor) Execute(ctx context.Context, req ExecuteRequest) (types.TransactionResult, error) {
	if err := req.Selector.Validate(); err != nil {
		return types.TransactionResult{}, err
	}

	var mint solana.PublicKey
	if req.Selector.Latest {
		var err error
		if mint, err = g.governingMint(ctx, req.MintType); err != nil {
			return types.TransactionResult{}, err
		}
	}
	address, err := g.resolveProposal(ctx, req.Selector, mint)
	if err != nil {
		return types.TransactionResult{}, err
	}
	proposal, err := g.inspector.GetProposal(ctx, address)
	if err != nil {
		return types.TransactionResult{}, err
	}

	option, err := solanasdk.ExecutableOptionIndex(proposal)
	if err != nil {
		return types.TransactionResult{}, err
	}
	txAddress, err := solanasdk.FindProposalTransactionPDA(g.config.GovernanceProgramID, address, option,
		solanasdk.ExecuteTransactionIndex)
	if err != nil {
		return types.TransactionResult{}, err
	}
	tx, err := g.inspector.GetProposalTransaction(ctx, txAddress)
	if err != nil {
		return types.TransactionResult{}, err
	}

	ix, err := g.builder.ExecuteTransaction(solanasdk.ExecuteRequest{
		Proposal:    address,
		Address:     txAddress,
		Transaction: tx,
	})
	if err != nil {
		return types.TransactionResult{}, err
	}
	sdk.LoggerFrom(ctx).Infof("executing option %d of proposal %s (%s)", option, address, proposal.State)

	return g.submit(ctx, "execute", []solana.Instruction{ix})
}
