package solana

import (
	"context"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
)

// Inspector reads and decodes governance and loader accounts. Every call fetches the account
// again; nothing is cached.
type Inspector struct {
	client *rpc.Client
}

// NewInspector creates a new Inspector reading through client.
func NewInspector(client *rpc.Client) *Inspector {
	return &Inspector{client: client}
}

func (i *Inspector) GetRealm(ctx context.Context, address solana.PublicKey) (*Realm, error) {
	return getGovernanceAccount[Realm](ctx, i.client, "realm", address)
}

func (i *Inspector) GetGovernance(ctx context.Context, address solana.PublicKey) (*Governance, error) {
	return getGovernanceAccount[Governance](ctx, i.client, "governance", address)
}

func (i *Inspector) GetProposal(ctx context.Context, address solana.PublicKey) (*Proposal, error) {
	return getGovernanceAccount[Proposal](ctx, i.client, "proposal", address)
}

func (i *Inspector) GetTokenOwnerRecord(ctx context.Context, address solana.PublicKey) (*TokenOwnerRecord, error) {
	return getGovernanceAccount[TokenOwnerRecord](ctx, i.client, "token owner record", address)
}

func (i *Inspector) GetProposalTransaction(ctx context.Context, address solana.PublicKey) (*ProposalTransaction, error) {
	return getGovernanceAccount[ProposalTransaction](ctx, i.client, "proposal transaction", address)
}

// GetBufferState reads a loader account that is expected to be a buffer.
func (i *Inspector) GetBufferState(ctx context.Context, address solana.PublicKey) (BufferState, error) {
	data, err := getAccountData(ctx, i.client, "buffer", address)
	if err != nil {
		return BufferState{}, err
	}

	state, err := DecodeBufferState(data)
	if err != nil {
		return BufferState{}, sdkerrors.NewDecodeError("buffer", address.String(), err)
	}

	return state, nil
}

func getGovernanceAccount[T any](
	ctx context.Context, client *rpc.Client, kind string, address solana.PublicKey,
) (*T, error) {
	data, err := getAccountData(ctx, client, kind, address)
	if err != nil {
		return nil, err
	}

	var out T
	if err := bin.UnmarshalBorsh(&out, data); err != nil {
		return nil, sdkerrors.NewDecodeError(kind, address.String(), err)
	}

	return &out, nil
}

func getAccountData(ctx context.Context, client *rpc.Client, kind string, address solana.PublicKey) ([]byte, error) {
	result, err := client.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, sdkerrors.NewNotFoundError(kind, address.String())
	}
	if err != nil {
		return nil, fmt.Errorf("unable to get %s account %s: %w", kind, address, err)
	}
	if result == nil || result.Value == nil {
		return nil, sdkerrors.NewNotFoundError(kind, address.String())
	}

	return result.Value.Data.GetBinary(), nil
}
