package themis

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/sdk"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

var errScannerNotConfigured = errors.New("buffer scanner is not configured")

// GetBuffers lists the loader buffers held by authority, or by the governance when authority is
// zero, in the order the cluster returned them.
func (g *Governor) GetBuffers(ctx context.Context, authority solana.PublicKey) ([]types.UpgradeableBuffer, error) {
	if g.scanner == nil {
		return nil, errScannerNotConfigured
	}
	if authority.IsZero() {
		authority = g.config.GovernanceID
	}

	return g.scanner.Scan(ctx, authority)
}

// CloseBuffersRequest describes a proposal closing governance-owned buffers.
type CloseBuffersRequest struct {
	ProposalMeta
	// Authority holds the buffers and signs their close; defaults to the governance.
	Authority solana.PublicKey
	// Recipient receives the reclaimed lamports; defaults to Spill, then to the caller.
	Recipient solana.PublicKey
	Spill     solana.PublicKey
}

// CloseBuffersResult is the proposal created and the buffers it closes.
type CloseBuffersResult struct {
	ProposeResult
	Buffers []types.UpgradeableBuffer
}

// CloseBuffers proposes closing the authority's buffers, at most solanasdk.BufferBatchSize of
// them per proposal. Run it again once the proposal executed to close the rest.
func (g *Governor) CloseBuffers(ctx context.Context, req CloseBuffersRequest) (CloseBuffersResult, error) {
	buffers, err := g.GetBuffers(ctx, req.Authority)
	if err != nil {
		return CloseBuffersResult{}, err
	}
	if len(buffers) == 0 {
		return CloseBuffersResult{}, sdkerrors.WrapUsageError(ErrNoBuffers)
	}

	batch := buffers[:min(len(buffers), solanasdk.BufferBatchSize)]
	if len(batch) < len(buffers) {
		sdk.LoggerFrom(ctx).Warnf("found %d buffers, closing the first %d", len(buffers), len(batch))
	}

	closes, err := g.builder.CloseBuffers(batch, solanasdk.CloseBuffersRequest{
		Authority: req.Authority,
		Recipient: req.Recipient,
		Spill:     req.Spill,
	}.WithDefaults(g.caller(), g.config))
	if err != nil {
		return CloseBuffersResult{}, err
	}

	result, err := g.propose(ctx, "close-buffers", req.ProposalMeta, closes)
	if err != nil {
		return CloseBuffersResult{}, err
	}

	return CloseBuffersResult{ProposeResult: result, Buffers: batch}, nil
}
