package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"

	"github.com/smartcontractkit/themis/internal/utils/safecast"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

// BufferBatchSize bounds the close instructions in one proposal so that the insert-transaction
// instruction stays within the transaction size limit.
const BufferBatchSize = 10

// Proposals are built with a single option holding a single transaction that can run as soon as
// the vote passes.
const (
	proposalOptionIndex uint8  = 0
	proposalTxIndex     uint16 = 0
	proposalHoldUpTime  uint32 = 0
)

// ExecuteTransactionIndex is the transaction index the execute path seeds proposal transaction
// addresses with.
const ExecuteTransactionIndex uint16 = 0

// Builder produces the ordered instruction lists of the governance lifecycle. It performs no
// network access; callers pass the state they read beforehand.
type Builder struct {
	config types.Config
}

func NewBuilder(config types.Config) *Builder {
	return &Builder{config: config.WithDefaults()}
}

// ProposeRequest describes a proposal created by Authority, who also pays, signs off and is the
// only signatory.
type ProposeRequest struct {
	Mint      solana.PublicKey
	Index     uint32
	Authority solana.PublicKey
	Params    ProposalParams
	Payload   []solana.Instruction
}

// ProposalInstructions is a proposal creation sequence together with the address it creates.
type ProposalInstructions struct {
	Proposal     solana.PublicKey
	Index        uint32
	Instructions []solana.Instruction
}

// Propose returns create-proposal, add-signatory, insert-transaction and sign-off, in that
// order. They must be submitted in one transaction.
func (b *Builder) Propose(req ProposeRequest) (ProposalInstructions, error) {
	if len(req.Payload) == 0 {
		return ProposalInstructions{}, sdkerrors.NewUsageError("proposal has no instructions to insert")
	}

	programID := b.config.GovernanceProgramID
	proposal, err := FindProposalPDA(programID, b.config.GovernanceID, req.Mint, req.Index)
	if err != nil {
		return ProposalInstructions{}, err
	}
	ownerRecord, err := FindTokenOwnerRecordPDA(programID, b.config.RealmID, req.Mint, req.Authority)
	if err != nil {
		return ProposalInstructions{}, err
	}

	payload := make([]InstructionData, 0, len(req.Payload))
	for _, ix := range req.Payload {
		data, err := NewInstructionData(ix)
		if err != nil {
			return ProposalInstructions{}, err
		}
		payload = append(payload, data)
	}

	create, err := NewCreateProposalInstruction(programID, b.config.RealmID, b.config.GovernanceID, ownerRecord,
		req.Mint, req.Authority, req.Authority, req.Index, req.Params)
	if err != nil {
		return ProposalInstructions{}, err
	}
	addSignatory, err := NewAddSignatoryInstruction(programID, proposal, ownerRecord, req.Authority, req.Authority,
		req.Authority)
	if err != nil {
		return ProposalInstructions{}, err
	}
	insert, err := NewInsertTransactionInstruction(programID, b.config.GovernanceID, proposal, ownerRecord,
		req.Authority, req.Authority, proposalOptionIndex, proposalTxIndex, proposalHoldUpTime, payload)
	if err != nil {
		return ProposalInstructions{}, err
	}
	signOff, err := NewSignOffProposalInstruction(programID, b.config.RealmID, b.config.GovernanceID, proposal,
		req.Authority)
	if err != nil {
		return ProposalInstructions{}, err
	}

	return ProposalInstructions{
		Proposal:     proposal,
		Index:        req.Index,
		Instructions: []solana.Instruction{create, addSignatory, insert, signOff},
	}, nil
}

// UpgradeRequest describes a program upgrade from Buffer.
type UpgradeRequest struct {
	Buffer solana.PublicKey
	// Spill receives the buffer's lamports once the upgrade consumed it.
	Spill solana.PublicKey
	// Authority is the program's upgrade authority.
	Authority solana.PublicKey
}

// WithDefaults sends spilled lamports to caller and uses the governance as upgrade authority
// when either is unset.
func (r UpgradeRequest) WithDefaults(caller solana.PublicKey, config types.Config) UpgradeRequest {
	if r.Spill.IsZero() {
		r.Spill = caller
	}
	if r.Authority.IsZero() {
		r.Authority = config.GovernanceID
	}

	return r
}

// UpgradeProgram returns the loader upgrade of the configured program.
func (b *Builder) UpgradeProgram(req UpgradeRequest) (solana.Instruction, error) {
	if err := b.config.ValidateUpgradeTarget(); err != nil {
		return nil, err
	}
	if req.Buffer.IsZero() {
		return nil, sdkerrors.NewUsageError("source buffer is required")
	}
	if req.Spill.IsZero() || req.Authority.IsZero() {
		return nil, sdkerrors.NewUsageError("upgrade request is missing spill or authority, call WithDefaults first")
	}

	return NewUpgradeInstruction(b.config.LoaderProgramID, b.config.ProgramDataID, b.config.ProgramID, req.Buffer,
		req.Spill, req.Authority), nil
}

// VoteRequest describes a vote by Voter on Proposal. ProposalOwner is the governing token owner
// of the record that created the proposal.
type VoteRequest struct {
	Proposal      solana.PublicKey
	ProposalOwner solana.PublicKey
	Mint          solana.PublicKey
	Voter         solana.PublicKey
	Vote          types.Vote
}

// CastVote returns the single cast-vote instruction.
func (b *Builder) CastVote(req VoteRequest) (solana.Instruction, error) {
	programID := b.config.GovernanceProgramID
	proposalOwnerRecord, err := FindTokenOwnerRecordPDA(programID, b.config.RealmID, req.Mint, req.ProposalOwner)
	if err != nil {
		return nil, err
	}
	voterRecord, err := FindTokenOwnerRecordPDA(programID, b.config.RealmID, req.Mint, req.Voter)
	if err != nil {
		return nil, err
	}

	return NewCastVoteInstruction(programID, b.config.RealmID, b.config.GovernanceID, req.Proposal,
		proposalOwnerRecord, voterRecord, req.Voter, req.Mint, req.Voter, req.Vote)
}

// ExecutableOptionIndex returns the option index the executed proposal transaction is stored
// under: the first option's next transaction index minus one. The transaction index within that
// option is always ExecuteTransactionIndex.
func ExecutableOptionIndex(proposal *Proposal) (uint8, error) {
	if len(proposal.Options) == 0 {
		return 0, sdkerrors.NewUsageError("proposal has no options")
	}
	next := proposal.Options[0].TransactionsNextIndex
	if next == 0 {
		return 0, sdkerrors.NewUsageError("proposal has no transactions to execute")
	}

	index, err := safecast.IntToUint8(int(next) - 1)
	if err != nil {
		return 0, sdkerrors.NewUsageError("option index %d of proposal is out of range: %v", next-1, err)
	}

	return index, nil
}

// ExecuteRequest describes the execution of the transaction stored at Address.
type ExecuteRequest struct {
	Proposal    solana.PublicKey
	Address     solana.PublicKey
	Transaction *ProposalTransaction
}

// ExecuteTransaction returns the single execute-transaction instruction. Only single instruction
// bundles are supported. The governance signs through the program, so its signer flag is
// cleared; every other flag is kept.
func (b *Builder) ExecuteTransaction(req ExecuteRequest) (solana.Instruction, error) {
	if n := len(req.Transaction.Instructions); n != 1 {
		return nil, sdkerrors.NewUsageError("proposal transaction %s holds %d instructions, only 1 is supported", req.Address, n)
	}

	ix := req.Transaction.Instructions[0]
	ix.Accounts = lo.Map(ix.Accounts, func(meta AccountMetaData, _ int) AccountMetaData {
		if meta.PublicKey.Equals(b.config.GovernanceID) {
			meta.IsSigner = false
		}

		return meta
	})

	return NewExecuteTransactionInstruction(b.config.GovernanceProgramID, b.config.GovernanceID, req.Proposal,
		req.Address, ix)
}

// Deposit returns the deposit of amount governing tokens of mint held by owner.
func (b *Builder) Deposit(mint, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	if amount == 0 {
		return nil, sdkerrors.NewUsageError("deposit amount must be greater than 0")
	}

	return NewDepositGoverningTokensInstruction(b.config.GovernanceProgramID, b.config.RealmID, mint, owner, owner, amount)
}

// Withdraw returns the withdrawal of owner's whole deposit of mint.
func (b *Builder) Withdraw(mint, owner solana.PublicKey) (solana.Instruction, error) {
	return NewWithdrawGoverningTokensInstruction(b.config.GovernanceProgramID, b.config.RealmID, mint, owner)
}

// SetGovernanceConfig returns the set-config instruction replacing the governance config.
func (b *Builder) SetGovernanceConfig(config GovernanceConfig) (solana.Instruction, error) {
	return NewSetGovernanceConfigInstruction(b.config.GovernanceProgramID, b.config.GovernanceID, config)
}

// CloseBuffersRequest describes how discovered buffers are closed.
type CloseBuffersRequest struct {
	// Authority is the buffers' authority; it signs each close.
	Authority solana.PublicKey
	// Recipient receives the reclaimed lamports.
	Recipient solana.PublicKey
	Spill     solana.PublicKey
}

// WithDefaults uses the governance as authority and sends lamports to Spill, or to caller when
// no spill account is set either.
func (r CloseBuffersRequest) WithDefaults(caller solana.PublicKey, config types.Config) CloseBuffersRequest {
	if r.Authority.IsZero() {
		r.Authority = config.GovernanceID
	}
	if r.Recipient.IsZero() {
		r.Recipient = r.Spill
	}
	if r.Recipient.IsZero() {
		r.Recipient = caller
	}

	return r
}

// CloseBuffers returns one close instruction per buffer, for at most BufferBatchSize buffers in
// the order given.
func (b *Builder) CloseBuffers(buffers []types.UpgradeableBuffer, req CloseBuffersRequest) ([]solana.Instruction, error) {
	if req.Authority.IsZero() || req.Recipient.IsZero() {
		return nil, sdkerrors.NewUsageError("close request is missing authority or recipient, call WithDefaults first")
	}
	if len(buffers) == 0 {
		return nil, sdkerrors.NewUsageError("no buffers to close")
	}

	batch := buffers[:min(len(buffers), BufferBatchSize)]

	return lo.Map(batch, func(buffer types.UpgradeableBuffer, _ int) solana.Instruction {
		return NewCloseBufferInstruction(b.config.LoaderProgramID, buffer.Address, req.Recipient, req.Authority)
	}), nil
}

// ProposeCloseBuffers wraps CloseBuffers in a proposal so that closing is itself voted on.
func (b *Builder) ProposeCloseBuffers(
	buffers []types.UpgradeableBuffer, req CloseBuffersRequest, propose ProposeRequest,
) (ProposalInstructions, error) {
	closes, err := b.CloseBuffers(buffers, req)
	if err != nil {
		return ProposalInstructions{}, err
	}
	propose.Payload = closes

	out, err := b.Propose(propose)
	if err != nil {
		return ProposalInstructions{}, fmt.Errorf("unable to build close buffers proposal: %w", err)
	}

	return out, nil
}
