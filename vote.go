package themis

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/sdk"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

// ProposalSelector picks a proposal by address, or the governance's most recent one when Latest
// is set. Latest wins when both are given.
type ProposalSelector struct {
	ID     solana.PublicKey
	Latest bool
}

// Validate fails when the selector names no proposal.
func (s ProposalSelector) Validate() error {
	if !s.Latest && s.ID.IsZero() {
		return sdkerrors.WrapUsageError(ErrProposalSelectorMissing)
	}

	return nil
}

// resolveProposal returns the selected proposal address. Latest is the proposal at index
// ProposalsCount-1 under mint.
func (g *Governor) resolveProposal(ctx context.Context, sel ProposalSelector, mint solana.PublicKey) (solana.PublicKey, error) {
	if !sel.Latest {
		return sel.ID, nil
	}

	governance, err := g.inspector.GetGovernance(ctx, g.config.GovernanceID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if governance.ProposalsCount == 0 {
		return solana.PublicKey{}, sdkerrors.WrapUsageError(ErrNoProposals)
	}

	proposal, err := solanasdk.FindProposalPDA(g.config.GovernanceProgramID, g.config.GovernanceID, mint,
		governance.ProposalsCount-1)
	if err != nil {
		return solana.PublicKey{}, err
	}
	sdk.LoggerFrom(ctx).Infof("latest proposal is %d at %s", governance.ProposalsCount-1, proposal)

	return proposal, nil
}

// VoteRequest is a vote by the caller on the selected proposal.
type VoteRequest struct {
	Selector ProposalSelector
	MintType types.MintType
	Vote     types.Vote
}

// Vote casts the caller's vote. The caller must hold a token owner record for the selected mint.
func (g *Governor) Vote(ctx context.Context, req VoteRequest) (types.TransactionResult, error) {
	if err := req.Selector.Validate(); err != nil {
		return types.TransactionResult{}, err
	}

	mint, err := g.governingMint(ctx, req.MintType)
	if err != nil {
		return types.TransactionResult{}, err
	}
	address, err := g.resolveProposal(ctx, req.Selector, mint)
	if err != nil {
		return types.TransactionResult{}, err
	}
	proposal, err := g.inspector.GetProposal(ctx, address)
	if err != nil {
		return types.TransactionResult{}, err
	}
	ownerRecord, err := g.inspector.GetTokenOwnerRecord(ctx, proposal.TokenOwnerRecord)
	if err != nil {
		return types.TransactionResult{}, err
	}

	ix, err := g.builder.CastVote(solanasdk.VoteRequest{
		Proposal:      address,
		ProposalOwner: ownerRecord.GoverningTokenOwner,
		Mint:          mint,
		Voter:         g.caller(),
		Vote:          req.Vote,
	})
	if err != nil {
		return types.TransactionResult{}, err
	}
	sdk.LoggerFrom(ctx).Infof("voting %s on proposal %s (%s)", req.Vote, address, proposal.State)

	return g.submit(ctx, "vote", []solana.Instruction{ix})
}
