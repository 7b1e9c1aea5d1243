package themis

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/sdk"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

const singleVoteOption = "single_vote"

// ProposalMeta names a new proposal and selects the mint whose token owner record creates it.
type ProposalMeta struct {
	Name        string
	Description string
	MintType    types.MintType
	// Options are the single choice labels; defaults to one "single_vote" option.
	Options []string
}

// ProposeUpgradeRequest describes a proposal upgrading the configured program from Buffer.
type ProposeUpgradeRequest struct {
	ProposalMeta
	Buffer solana.PublicKey
	// Spill receives the buffer's lamports; defaults to the caller.
	Spill solana.PublicKey
}

// ProposeResult is the created proposal and the transaction that created it.
type ProposeResult struct {
	Proposal solana.PublicKey
	Index    uint32
	types.TransactionResult
}

// ProposeUpgrade creates, signs off and submits a proposal whose only transaction upgrades the
// configured program from the given buffer.
func (g *Governor) ProposeUpgrade(ctx context.Context, req ProposeUpgradeRequest) (ProposeResult, error) {
	upgrade, err := g.builder.UpgradeProgram(solanasdk.UpgradeRequest{
		Buffer: req.Buffer,
		Spill:  req.Spill,
	}.WithDefaults(g.caller(), g.config))
	if err != nil {
		return ProposeResult{}, err
	}

	return g.propose(ctx, "propose", req.ProposalMeta, []solana.Instruction{upgrade})
}

// propose wraps payload in a new proposal. The proposal index is the governance's proposal count
// read right before building; a concurrent proposal on the same governance makes the submission
// fail and nothing is retried.
func (g *Governor) propose(
	ctx context.Context, action string, meta ProposalMeta, payload []solana.Instruction,
) (ProposeResult, error) {
	mint, err := g.governingMint(ctx, meta.MintType)
	if err != nil {
		return ProposeResult{}, err
	}
	governance, err := g.inspector.GetGovernance(ctx, g.config.GovernanceID)
	if err != nil {
		return ProposeResult{}, err
	}

	built, err := g.builder.Propose(g.proposeRequest(mint, governance.ProposalsCount, meta, payload))
	if err != nil {
		return ProposeResult{}, fmt.Errorf("unable to build proposal: %w", err)
	}
	sdk.LoggerFrom(ctx).Infof("creating proposal %d at %s", built.Index, built.Proposal)

	result, err := g.submit(ctx, action, built.Instructions)
	if err != nil {
		return ProposeResult{}, err
	}

	return ProposeResult{Proposal: built.Proposal, Index: built.Index, TransactionResult: result}, nil
}

func (g *Governor) proposeRequest(
	mint solana.PublicKey, index uint32, meta ProposalMeta, payload []solana.Instruction,
) solanasdk.ProposeRequest {
	options := meta.Options
	if len(options) == 0 {
		options = []string{singleVoteOption}
	}

	return solanasdk.ProposeRequest{
		Mint:      mint,
		Index:     index,
		Authority: g.caller(),
		Params: solanasdk.ProposalParams{
			Name:        meta.Name,
			Description: meta.Description,
			VoteType:    solanasdk.VoteType{Kind: solanasdk.VoteKindSingleChoice},
			Options:     options,
		},
		Payload: payload,
	}
}
