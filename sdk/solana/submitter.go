package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/smartcontractkit/themis/sdk"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

var _ sdk.Submitter = (*Submitter)(nil)

var ErrNoSigners = errors.New("at least one signer is required")

const defaultPollInterval = 500 * time.Millisecond

// Submitter signs and sends instruction lists as single transactions and waits for them to be
// confirmed.
type Submitter struct {
	client       *rpc.Client
	commitment   rpc.CommitmentType
	pollInterval time.Duration
}

type submitterOption func(*Submitter)

// WithPollInterval sets how often signature statuses are polled.
func WithPollInterval(interval time.Duration) submitterOption {
	return func(s *Submitter) {
		s.pollInterval = interval
	}
}

// WithCommitment sets the commitment used for preflight and confirmation. It defaults to
// confirmed; finalized waits for finalization.
func WithCommitment(commitment rpc.CommitmentType) submitterOption {
	return func(s *Submitter) {
		s.commitment = commitment
	}
}

func NewSubmitter(client *rpc.Client, options ...submitterOption) *Submitter {
	submitter := &Submitter{
		client:       client,
		commitment:   rpc.CommitmentConfirmed,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range options {
		opt(submitter)
	}

	return submitter
}

// Submit sends instructions as one transaction paid by the first signer. The blockhash is fetched
// right before signing. The call returns once the cluster confirms the transaction, reports an
// error for it, or the blockhash expires.
func (s *Submitter) Submit(
	ctx context.Context, instructions []solana.Instruction, signers ...solana.PrivateKey,
) (types.TransactionResult, error) {
	if len(signers) == 0 {
		return types.TransactionResult{}, ErrNoSigners
	}
	payer := signers[0].PublicKey()

	recent, err := s.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("unable to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, recent.Value.Blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("unable to create transaction: %w", err)
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}

		return nil
	})
	if err != nil {
		return types.TransactionResult{}, fmt.Errorf("unable to sign transaction: %w", err)
	}

	signature, err := s.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: s.commitment,
	})
	if err != nil {
		return types.TransactionResult{}, sdkerrors.NewRemoteRejectionError("", "send failed", err)
	}
	sdk.LoggerFrom(ctx).Infof("sent transaction %s with %d instructions", signature, len(instructions))

	slot, err := s.waitForConfirmation(ctx, signature, recent.Value.LastValidBlockHeight)
	if err != nil {
		return types.TransactionResult{}, err
	}

	return types.TransactionResult{
		Hash:    signature.String(),
		Slot:    slot,
		RawData: instructions,
	}, nil
}

func (s *Submitter) waitForConfirmation(
	ctx context.Context, signature solana.Signature, lastValidBlockHeight uint64,
) (uint64, error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		statuses, err := s.client.GetSignatureStatuses(ctx, false, signature)
		if err != nil {
			return 0, fmt.Errorf("unable to get status of %s: %w", signature, err)
		}

		var status *rpc.SignatureStatusesResult
		if statuses != nil && len(statuses.Value) > 0 {
			status = statuses.Value[0]
		}

		switch {
		case status == nil:
			height, err := s.client.GetBlockHeight(ctx, s.commitment)
			if err != nil {
				return 0, fmt.Errorf("unable to get block height: %w", err)
			}
			if height > lastValidBlockHeight {
				return 0, sdkerrors.NewRemoteRejectionError(signature.String(), "blockhash expired before confirmation", nil)
			}
		case status.Err != nil:
			return 0, sdkerrors.NewRemoteRejectionError(signature.String(), fmt.Sprintf("%v", status.Err), nil)
		case s.reached(status.ConfirmationStatus):
			return status.Slot, nil
		}

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("waiting for %s: %w", signature, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *Submitter) reached(status rpc.ConfirmationStatusType) bool {
	switch status {
	case rpc.ConfirmationStatusFinalized:
		return true
	case rpc.ConfirmationStatusConfirmed:
		return s.commitment != rpc.CommitmentFinalized
	default:
		return false
	}
}
