package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cast"

	"github.com/smartcontractkit/themis/sdk"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

// BufferScanner finds loader buffers held by an authority.
type BufferScanner struct {
	client        *rpc.Client
	loaderProgram solana.PublicKey
}

func NewBufferScanner(client *rpc.Client, loaderProgram solana.PublicKey) *BufferScanner {
	return &BufferScanner{client: client, loaderProgram: loaderProgram}
}

// Scan returns the buffers whose authority is authority, in the order the node reports them.
// Only the buffer header is fetched for each match. A match that does not decode aborts the scan.
func (s *BufferScanner) Scan(ctx context.Context, authority solana.PublicKey) ([]types.UpgradeableBuffer, error) {
	opts, err := bufferScanOpts(authority)
	if err != nil {
		return nil, err
	}

	accounts, err := s.client.GetProgramAccountsWithOpts(ctx, s.loaderProgram, opts)
	if errors.Is(err, rpc.ErrNotFound) {
		return []types.UpgradeableBuffer{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to scan buffers of %s: %w", authority, err)
	}
	sdk.LoggerFrom(ctx).Debugf("buffer scan for %s matched %d accounts", authority, len(accounts))

	buffers := make([]types.UpgradeableBuffer, 0, len(accounts))
	for _, keyed := range accounts {
		if keyed == nil || keyed.Account == nil {
			continue
		}

		data := keyed.Account.Data.GetBinary()
		state, err := DecodeBufferState(data)
		if err != nil {
			return nil, sdkerrors.NewDecodeError("buffer", keyed.Pubkey.String(), err)
		}
		if state.Authority == nil {
			continue
		}

		buffers = append(buffers, types.UpgradeableBuffer{
			Address:   keyed.Pubkey,
			Authority: *state.Authority,
			DataLen:   len(data),
			Lamports:  keyed.Account.Lamports,
		})
	}

	return buffers, nil
}

func bufferScanOpts(authority solana.PublicKey) (*rpc.GetProgramAccountsOpts, error) {
	state := BufferLayout.MustField(bufferFieldState)
	present := BufferLayout.MustField(bufferFieldAuthorityPresent)
	auth := BufferLayout.MustField(bufferFieldAuthority)

	offsets := make([]uint64, 0, 3)
	for _, f := range []int{state.Offset, present.Offset, auth.Offset} {
		offset, err := cast.ToUint64E(f)
		if err != nil {
			return nil, fmt.Errorf("invalid %s offset %d: %w", BufferLayout.Name, f, err)
		}
		offsets = append(offsets, offset)
	}
	length, err := cast.ToUint64E(BufferLayout.Len())
	if err != nil {
		return nil, err
	}
	sliceOffset := uint64(0)

	return &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingBase64,
		DataSlice:  &rpc.DataSlice{Offset: &sliceOffset, Length: &length},
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: offsets[0], Bytes: le32(LoaderStateBuffer)}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: offsets[1], Bytes: solana.Base58{1}}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: offsets[2], Bytes: authority.Bytes()}},
		},
	}, nil
}
