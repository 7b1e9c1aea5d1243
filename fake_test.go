package themis

import (
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

// fakeInspector serves governance records from memory. Unknown addresses are reported as not
// found.
type fakeInspector struct {
	realms       map[solana.PublicKey]*solanasdk.Realm
	governances  map[solana.PublicKey]*solanasdk.Governance
	proposals    map[solana.PublicKey]*solanasdk.Proposal
	records      map[solana.PublicKey]*solanasdk.TokenOwnerRecord
	transactions map[solana.PublicKey]*solanasdk.ProposalTransaction

	calls int
}

func newFakeInspector() *fakeInspector {
	return &fakeInspector{
		realms:       map[solana.PublicKey]*solanasdk.Realm{},
		governances:  map[solana.PublicKey]*solanasdk.Governance{},
		proposals:    map[solana.PublicKey]*solanasdk.Proposal{},
		records:      map[solana.PublicKey]*solanasdk.TokenOwnerRecord{},
		transactions: map[solana.PublicKey]*solanasdk.ProposalTransaction{},
	}
}

func (f *fakeInspector) GetRealm(_ context.Context, address solana.PublicKey) (*solanasdk.Realm, error) {
	return lookup(f, f.realms, "realm", address)
}

func (f *fakeInspector) GetGovernance(_ context.Context, address solana.PublicKey) (*solanasdk.Governance, error) {
	return lookup(f, f.governances, "governance", address)
}

func (f *fakeInspector) GetProposal(_ context.Context, address solana.PublicKey) (*solanasdk.Proposal, error) {
	return lookup(f, f.proposals, "proposal", address)
}

func (f *fakeInspector) GetTokenOwnerRecord(_ context.Context, address solana.PublicKey) (*solanasdk.TokenOwnerRecord, error) {
	return lookup(f, f.records, "token owner record", address)
}

func (f *fakeInspector) GetProposalTransaction(_ context.Context, address solana.PublicKey) (*solanasdk.ProposalTransaction, error) {
	return lookup(f, f.transactions, "proposal transaction", address)
}

func lookup[T any](f *fakeInspector, records map[solana.PublicKey]*T, kind string, address solana.PublicKey) (*T, error) {
	f.calls++
	record, ok := records[address]
	if !ok {
		return nil, sdkerrors.NewNotFoundError(kind, address.String())
	}

	return record, nil
}

// fakeSubmitter records every submitted instruction list and returns the given result and error.
type fakeSubmitter struct {
	result    types.TransactionResult
	err       error
	submitted [][]solana.Instruction
}

func newFakeSubmitter(err error) *fakeSubmitter {
	return &fakeSubmitter{result: types.TransactionResult{Hash: "fake-signature", Slot: 7}, err: err}
}

func (f *fakeSubmitter) Submit(
	_ context.Context, instructions []solana.Instruction, _ ...solana.PrivateKey,
) (types.TransactionResult, error) {
	f.submitted = append(f.submitted, instructions)
	if f.err != nil {
		return types.TransactionResult{}, f.err
	}
	result := f.result
	result.RawData = instructions

	return result, nil
}

// fakeScanner returns fixed buffers.
type fakeScanner struct {
	buffers   []types.UpgradeableBuffer
	err       error
	authority solana.PublicKey
}

func (f *fakeScanner) Scan(_ context.Context, authority solana.PublicKey) ([]types.UpgradeableBuffer, error) {
	f.authority = authority

	return f.buffers, f.err
}

// ----- fixtures -----

type fixture struct {
	config     types.Config
	signer     solana.PrivateKey
	community  solana.PublicKey
	council    solana.PublicKey
	inspector  *fakeInspector
	submitter  *fakeSubmitter
	governance *solanasdk.Governance
	realm      *solanasdk.Realm
}

// newFixture sets up a realm with community and council mints and a governance with
// proposalsCount proposals.
func newFixture(t *testing.T, proposalsCount uint32) *fixture {
	t.Helper()

	f := &fixture{
		config: types.Config{
			GovernanceProgramID: randomPublicKey(t),
			RealmID:             randomPublicKey(t),
			GovernanceID:        randomPublicKey(t),
			ProgramID:           randomPublicKey(t),
			ProgramDataID:       randomPublicKey(t),
		}.WithDefaults(),
		signer:    randomPrivateKey(t),
		community: randomPublicKey(t),
		council:   randomPublicKey(t),
		inspector: newFakeInspector(),
		submitter: newFakeSubmitter(nil),
	}

	f.realm = &solanasdk.Realm{
		AccountType:   solanasdk.AccountTypeRealmV2,
		CommunityMint: f.community,
		Config:        solanasdk.RealmConfig{CouncilMint: &f.council},
		Name:          "test realm",
	}
	f.governance = &solanasdk.Governance{
		AccountType:    solanasdk.AccountTypeGovernanceV2,
		Realm:          f.config.RealmID,
		ProposalsCount: proposalsCount,
		Config: solanasdk.GovernanceConfig{
			VoteThreshold:            solanasdk.VoteThreshold{Type: solanasdk.VoteThresholdYesVote, Percentage: 60},
			MinTransactionHoldUpTime: 10,
			MaxVotingTime:            259200,
			VoteTipping:              solanasdk.VoteTippingStrict,
		},
	}
	f.inspector.realms[f.config.RealmID] = f.realm
	f.inspector.governances[f.config.GovernanceID] = f.governance

	return f
}

func (f *fixture) governor(t *testing.T, opts ...Option) *Governor {
	t.Helper()

	g, err := NewGovernor(f.config, f.signer, f.inspector, f.submitter, opts...)
	require.NoError(t, err)

	return g
}

func (f *fixture) proposalAddress(t *testing.T, mint solana.PublicKey, index uint32) solana.PublicKey {
	t.Helper()

	address, err := solanasdk.FindProposalPDA(f.config.GovernanceProgramID, f.config.GovernanceID, mint, index)
	require.NoError(t, err)

	return address
}

func instructionData(t *testing.T, ix solana.Instruction) []byte {
	t.Helper()

	data, err := ix.Data()
	require.NoError(t, err)

	return data
}

func marshalInstructionData(t *testing.T, data solanasdk.InstructionData) []byte {
	t.Helper()

	out, err := bin.MarshalBorsh(data)
	require.NoError(t, err)

	return out
}

func randomPublicKey(t *testing.T) solana.PublicKey {
	t.Helper()

	return randomPrivateKey(t).PublicKey()
}

func randomPrivateKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	return key
}
