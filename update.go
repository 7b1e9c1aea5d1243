package themis

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/sdk"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
)

// UpdateRequest describes a governance config change. Fields left nil in Patch keep their
// current on-chain value.
type UpdateRequest struct {
	ProposalMeta
	Patch solanasdk.GovernanceConfigPatch
}

// GetGovernanceConfig reads the current governance config.
func (g *Governor) GetGovernanceConfig(ctx context.Context) (solanasdk.GovernanceConfig, error) {
	governance, err := g.inspector.GetGovernance(ctx, g.config.GovernanceID)
	if err != nil {
		return solanasdk.GovernanceConfig{}, err
	}

	return governance.Config, nil
}

// Update proposes replacing the governance config with the current one patched by req.Patch.
// Only the governance can sign set-config, so the change goes through a proposal.
func (g *Governor) Update(ctx context.Context, req UpdateRequest) (ProposeResult, error) {
	if req.Patch.IsEmpty() {
		return ProposeResult{}, sdkerrors.WrapUsageError(ErrEmptyConfigPatch)
	}

	current, err := g.GetGovernanceConfig(ctx)
	if err != nil {
		return ProposeResult{}, err
	}
	next := req.Patch.Apply(current)
	sdk.LoggerFrom(ctx).Debugf("governance config %+v -> %+v", current, next)

	ix, err := g.builder.SetGovernanceConfig(next)
	if err != nil {
		return ProposeResult{}, err
	}

	return g.propose(ctx, "update", req.ProposalMeta, []solana.Instruction{ix})
}
