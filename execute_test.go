package themis

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

func TestGovernor_Execute(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 5)
	proposal := f.proposalAddress(t, f.community, 4)
	f.addProposal(t, proposal, f.community, randomPublicKey(t), 3)

	// next index 3 locates the transaction at option 2, index 0
	txAddress, err := solanasdk.FindProposalTransactionPDA(f.config.GovernanceProgramID, proposal, 2, 0)
	require.NoError(t, err)
	misplaced, err := solanasdk.FindProposalTransactionPDA(f.config.GovernanceProgramID, proposal, 0, 2)
	require.NoError(t, err)
	require.NotEqual(t, misplaced, txAddress)
	buffer := randomPublicKey(t)
	upgrade := solanasdk.NewUpgradeInstruction(f.config.LoaderProgramID, f.config.ProgramDataID, f.config.ProgramID,
		buffer, f.signer.PublicKey(), f.config.GovernanceID)
	stored, err := solanasdk.NewInstructionData(upgrade)
	require.NoError(t, err)
	f.inspector.transactions[txAddress] = &solanasdk.ProposalTransaction{
		AccountType:  solanasdk.AccountTypeProposalTransactionV2,
		Proposal:     proposal,
		Instructions: []solanasdk.InstructionData{stored},
	}

	_, err = f.governor(t).Execute(context.Background(), ExecuteRequest{
		Selector: ProposalSelector{Latest: true}, MintType: types.MintTypeMember,
	})
	require.NoError(t, err)

	require.Len(t, f.submitter.submitted, 1)
	require.Len(t, f.submitter.submitted[0], 1)
	ix := f.submitter.submitted[0][0]
	assert.Equal(t, []byte{solanasdk.InstructionExecuteTransaction}, instructionData(t, ix))

	accounts := ix.Accounts()
	require.Len(t, accounts, 4+7)
	assert.Equal(t, proposal, accounts[1].PublicKey)
	assert.Equal(t, txAddress, accounts[2].PublicKey)
	assert.Equal(t, f.config.LoaderProgramID, accounts[3].PublicKey)
	assert.Equal(t, buffer, accounts[6].PublicKey)

	// the governance authority is passed writable without a signature
	authority := accounts[len(accounts)-1]
	assert.Equal(t, f.config.GovernanceID, authority.PublicKey)
	assert.False(t, authority.IsSigner)
	assert.True(t, authority.IsWritable)
}

func TestGovernor_ExecuteExplicitID(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 1)
	proposal := randomPublicKey(t)
	f.addProposal(t, proposal, f.council, randomPublicKey(t), 1)
	delete(f.inspector.realms, f.config.RealmID)

	txAddress, err := solanasdk.FindProposalTransactionPDA(f.config.GovernanceProgramID, proposal, 0, 0)
	require.NoError(t, err)
	f.inspector.transactions[txAddress] = &solanasdk.ProposalTransaction{
		Instructions: []solanasdk.InstructionData{{ProgramID: solana.SystemProgramID}},
	}

	got, err := f.governor(t, WithDryRun()).Execute(context.Background(), ExecuteRequest{
		Selector: ProposalSelector{ID: proposal},
	})
	require.NoError(t, err)
	require.Len(t, got.RawData, 1)
	assert.Empty(t, f.submitter.submitted)
}

func TestGovernor_ExecuteErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		nextIndex uint16
		stored    int
		wantErr   string
	}{
		{name: "no transactions inserted", nextIndex: 0, wantErr: "usage error: proposal has no transactions to execute"},
		{name: "multi instruction bundle", nextIndex: 1, stored: 2, wantErr: "holds 2 instructions, only 1 is supported"},
		{name: "missing proposal transaction", nextIndex: 2, stored: -1, wantErr: "proposal transaction account not found"},
		{name: "option index out of range", nextIndex: 257, stored: -1, wantErr: "option index 256 of proposal is out of range"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, 1)
			proposal := randomPublicKey(t)
			f.addProposal(t, proposal, f.community, randomPublicKey(t), tt.nextIndex)
			if tt.nextIndex > 0 && tt.stored >= 0 {
				txAddress, err := solanasdk.FindProposalTransactionPDA(f.config.GovernanceProgramID, proposal,
					uint8(tt.nextIndex-1), 0)
				require.NoError(t, err)
				f.inspector.transactions[txAddress] = &solanasdk.ProposalTransaction{
					Instructions: make([]solanasdk.InstructionData, tt.stored),
				}
			}

			_, err := f.governor(t).Execute(context.Background(), ExecuteRequest{Selector: ProposalSelector{ID: proposal}})
			require.ErrorContains(t, err, tt.wantErr)
			assert.Empty(t, f.submitter.submitted)
		})
	}

	t.Run("missing selector", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, 1)
		_, err := f.governor(t).Execute(context.Background(), ExecuteRequest{})

		var usageErr *sdkerrors.UsageError
		require.ErrorAs(t, err, &usageErr)
		assert.Zero(t, f.inspector.calls)
	})
}
