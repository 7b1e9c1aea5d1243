package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/themis/types"
)

func TestNewAddSignatoryInstruction(t *testing.T) {
	t.Parallel()

	proposal, record, signatory := randomPublicKey(t), randomPublicKey(t), randomPublicKey(t)

	ix, err := NewAddSignatoryInstruction(testGovernanceProgramID, proposal, record, signatory, signatory, signatory)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, append([]byte{InstructionAddSignatory}, signatory.Bytes()...), data)

	signatoryRecord, err := FindSignatoryRecordPDA(testGovernanceProgramID, proposal, signatory)
	require.NoError(t, err)
	assert.Equal(t, signatoryRecord, ix.Accounts()[3].PublicKey)
	assert.True(t, ix.Accounts()[3].IsWritable)
}

func TestNewSignOffProposalInstruction(t *testing.T) {
	t.Parallel()

	proposal, signatory := randomPublicKey(t), randomPublicKey(t)

	ix, err := NewSignOffProposalInstruction(testGovernanceProgramID, testRealmID, testGovernanceID, proposal, signatory)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{InstructionSignOffProposal}, data)

	accounts := ix.Accounts()
	require.Len(t, accounts, 5)
	assert.Equal(t, &solana.AccountMeta{PublicKey: signatory, IsSigner: true}, accounts[3])
}

func TestNewCreateProposalInstruction_MultiChoice(t *testing.T) {
	t.Parallel()

	mint, owner := randomPublicKey(t), randomPublicKey(t)

	ix, err := NewCreateProposalInstruction(testGovernanceProgramID, testRealmID, testGovernanceID, randomPublicKey(t),
		mint, owner, owner, 7, ProposalParams{
			VoteType:      VoteType{Kind: VoteKindMultiChoice, MaxVoterOptions: 2},
			Options:       []string{"a", "b"},
			UseDenyOption: true,
		})
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		InstructionCreateProposal,
		0, 0, 0, 0, // empty name
		0, 0, 0, 0, // empty description
		1, 2, 0, // multi choice, max 2 options
		2, 0, 0, 0,
		1, 0, 0, 0, 'a',
		1, 0, 0, 0, 'b',
		1,
	}, data)

	proposal, err := FindProposalPDA(testGovernanceProgramID, testGovernanceID, mint, 7)
	require.NoError(t, err)
	assert.Equal(t, proposal, ix.Accounts()[1].PublicKey)
}

func TestNewCastVoteInstruction_UnsupportedVote(t *testing.T) {
	t.Parallel()

	_, err := NewCastVoteInstruction(testGovernanceProgramID, testRealmID, testGovernanceID, randomPublicKey(t),
		randomPublicKey(t), randomPublicKey(t), randomPublicKey(t), randomPublicKey(t), randomPublicKey(t), types.Vote(9))
	require.ErrorContains(t, err, "unsupported vote")
}

func TestNewExecuteTransactionInstruction(t *testing.T) {
	t.Parallel()

	proposal, ptx, target := randomPublicKey(t), randomPublicKey(t), randomPublicKey(t)

	ix, err := NewExecuteTransactionInstruction(testGovernanceProgramID, testGovernanceID, proposal, ptx, InstructionData{
		ProgramID: target,
		Accounts:  []AccountMetaData{{PublicKey: testProgramID, IsWritable: true}},
	})
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 5)
	assert.Equal(t, target, accounts[3].PublicKey)
	assert.Equal(t, &solana.AccountMeta{PublicKey: testProgramID, IsWritable: true}, accounts[4])
}
