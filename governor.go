package themis

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/sdk"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

// Inspector reads the governance records the lifecycle actions depend on.
type Inspector interface {
	GetRealm(ctx context.Context, address solana.PublicKey) (*solanasdk.Realm, error)
	GetGovernance(ctx context.Context, address solana.PublicKey) (*solanasdk.Governance, error)
	GetProposal(ctx context.Context, address solana.PublicKey) (*solanasdk.Proposal, error)
	GetTokenOwnerRecord(ctx context.Context, address solana.PublicKey) (*solanasdk.TokenOwnerRecord, error)
	GetProposalTransaction(ctx context.Context, address solana.PublicKey) (*solanasdk.ProposalTransaction, error)
}

// BufferScanner discovers the loader buffers held by an authority.
type BufferScanner interface {
	Scan(ctx context.Context, authority solana.PublicKey) ([]types.UpgradeableBuffer, error)
}

// Governor runs the governance lifecycle actions on behalf of a single signer against one
// realm/governance pair. Each action reads the state it needs, builds the instruction list and
// submits it as one transaction.
type Governor struct {
	config    types.Config
	signer    solana.PrivateKey
	inspector Inspector
	scanner   BufferScanner
	submitter sdk.Submitter
	builder   *solanasdk.Builder
	dryRun    bool
}

type Option func(*Governor)

// WithDryRun builds the instructions of every action without submitting them. Results carry the
// instructions in RawData and an empty hash.
func WithDryRun() Option {
	return func(g *Governor) {
		g.dryRun = true
	}
}

// WithBufferScanner sets the scanner used by the buffer actions.
func WithBufferScanner(scanner BufferScanner) Option {
	return func(g *Governor) {
		g.scanner = scanner
	}
}

// NewGovernor creates a Governor. The signer pays for and signs every submitted transaction.
func NewGovernor(
	config types.Config, signer solana.PrivateKey, inspector Inspector, submitter sdk.Submitter, opts ...Option,
) (*Governor, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(signer) == 0 {
		return nil, ErrSignerRequired
	}

	g := &Governor{
		config:    config,
		signer:    signer,
		inspector: inspector,
		submitter: submitter,
		builder:   solanasdk.NewBuilder(config),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Config returns the identities the governor is bound to.
func (g *Governor) Config() types.Config {
	return g.config
}

func (g *Governor) caller() solana.PublicKey {
	return g.signer.PublicKey()
}

// governingMint reads the realm and resolves the mint selected by mintType.
func (g *Governor) governingMint(ctx context.Context, mintType types.MintType) (solana.PublicKey, error) {
	realm, err := g.inspector.GetRealm(ctx, g.config.RealmID)
	if err != nil {
		return solana.PublicKey{}, err
	}

	return realm.GoverningMint(mintType)
}

// submit sends instructions as one transaction, or only returns them in dry-run mode.
func (g *Governor) submit(ctx context.Context, action string, instructions []solana.Instruction) (types.TransactionResult, error) {
	lggr := sdk.LoggerFrom(ctx)
	if g.dryRun {
		lggr.Infof("dry run: %s built %d instructions, not submitting", action, len(instructions))

		return types.TransactionResult{RawData: instructions}, nil
	}

	result, err := g.submitter.Submit(ctx, instructions, g.signer)
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("unable to submit %s: %w", action, err)
	}
	lggr.Infof("%s confirmed in slot %d: %s", action, result.Slot, result.Hash)

	return result, nil
}
