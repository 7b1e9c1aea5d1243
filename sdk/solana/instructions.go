package solana

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/types"
)

// Governance program instruction tags.
const (
	InstructionDepositGoverningTokens  uint8 = 1
	InstructionWithdrawGoverningTokens uint8 = 2
	InstructionCreateProposal          uint8 = 6
	InstructionAddSignatory            uint8 = 7
	InstructionInsertTransaction       uint8 = 9
	InstructionSignOffProposal         uint8 = 12
	InstructionCastVote                uint8 = 13
	InstructionExecuteTransaction      uint8 = 16
	InstructionSetGovernanceConfig     uint8 = 19
)

const (
	voteApprove uint8 = 0
	voteDeny    uint8 = 1
)

// ProposalParams are the user supplied parts of a new proposal.
type ProposalParams struct {
	Name          string
	Description   string
	VoteType      VoteType
	Options       []string
	UseDenyOption bool
}

func newGovernanceInstruction(
	programID solana.PublicKey, tag uint8, accounts solana.AccountMetaSlice, encode func(enc *bin.Encoder) error,
) (solana.Instruction, error) {
	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteUint8(tag); err != nil {
		return nil, err
	}
	if encode != nil {
		if err := encode(enc); err != nil {
			return nil, fmt.Errorf("unable to encode governance instruction %d: %w", tag, err)
		}
	}

	return solana.NewInstruction(programID, accounts, buf.Bytes()), nil
}

// NewCreateProposalInstruction creates the proposal at index under governance.
func NewCreateProposalInstruction(
	programID, realm, governance, proposalOwnerRecord, mint, authority, payer solana.PublicKey,
	index uint32, params ProposalParams,
) (solana.Instruction, error) {
	proposal, err := FindProposalPDA(programID, governance, mint, index)
	if err != nil {
		return nil, err
	}
	realmConfig, err := FindRealmConfigPDA(programID, realm)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(realm, false, false),
		solana.NewAccountMeta(proposal, true, false),
		solana.NewAccountMeta(governance, true, false),
		solana.NewAccountMeta(proposalOwnerRecord, true, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(authority, false, true),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		solana.NewAccountMeta(realmConfig, false, false),
	}

	return newGovernanceInstruction(programID, InstructionCreateProposal, accounts, func(enc *bin.Encoder) error {
		if err := writeString(enc, params.Name); err != nil {
			return err
		}
		if err := writeString(enc, params.Description); err != nil {
			return err
		}
		if err := params.VoteType.marshal(enc); err != nil {
			return err
		}
		if err := writeLength(enc, len(params.Options)); err != nil {
			return err
		}
		for _, option := range params.Options {
			if err := writeString(enc, option); err != nil {
				return err
			}
		}

		return writeFlag(enc, params.UseDenyOption)
	})
}

func NewAddSignatoryInstruction(
	programID, proposal, tokenOwnerRecord, authority, payer, signatory solana.PublicKey,
) (solana.Instruction, error) {
	signatoryRecord, err := FindSignatoryRecordPDA(programID, proposal, signatory)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(proposal, true, false),
		solana.NewAccountMeta(tokenOwnerRecord, false, false),
		solana.NewAccountMeta(authority, false, true),
		solana.NewAccountMeta(signatoryRecord, true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	}

	return newGovernanceInstruction(programID, InstructionAddSignatory, accounts, func(enc *bin.Encoder) error {
		return writePublicKey(enc, signatory)
	})
}

// NewInsertTransactionInstruction attaches instructions to proposal at (optionIndex, index).
func NewInsertTransactionInstruction(
	programID, governance, proposal, tokenOwnerRecord, authority, payer solana.PublicKey,
	optionIndex uint8, index uint16, holdUpTime uint32, instructions []InstructionData,
) (solana.Instruction, error) {
	proposalTransaction, err := FindProposalTransactionPDA(programID, proposal, optionIndex, index)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(governance, false, false),
		solana.NewAccountMeta(proposal, true, false),
		solana.NewAccountMeta(tokenOwnerRecord, false, false),
		solana.NewAccountMeta(authority, false, true),
		solana.NewAccountMeta(proposalTransaction, true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
	}

	return newGovernanceInstruction(programID, InstructionInsertTransaction, accounts, func(enc *bin.Encoder) error {
		if err := enc.WriteUint8(optionIndex); err != nil {
			return err
		}
		if err := enc.WriteUint16(index, bin.LE); err != nil {
			return err
		}
		if err := enc.WriteUint32(holdUpTime, bin.LE); err != nil {
			return err
		}
		if err := writeLength(enc, len(instructions)); err != nil {
			return err
		}
		for _, ix := range instructions {
			if err := ix.MarshalWithEncoder(enc); err != nil {
				return err
			}
		}

		return nil
	})
}

func NewSignOffProposalInstruction(
	programID, realm, governance, proposal, signatory solana.PublicKey,
) (solana.Instruction, error) {
	signatoryRecord, err := FindSignatoryRecordPDA(programID, proposal, signatory)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(realm, false, false),
		solana.NewAccountMeta(governance, false, false),
		solana.NewAccountMeta(proposal, true, false),
		solana.NewAccountMeta(signatory, false, true),
		solana.NewAccountMeta(signatoryRecord, true, false),
	}

	return newGovernanceInstruction(programID, InstructionSignOffProposal, accounts, nil)
}

// NewCastVoteInstruction records vote by the owner of voterRecord. A yes vote approves the
// single option with full weight.
func NewCastVoteInstruction(
	programID, realm, governance, proposal, proposalOwnerRecord, voterRecord, authority, mint, payer solana.PublicKey,
	vote types.Vote,
) (solana.Instruction, error) {
	voteRecord, err := FindVoteRecordPDA(programID, proposal, voterRecord)
	if err != nil {
		return nil, err
	}
	realmConfig, err := FindRealmConfigPDA(programID, realm)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(realm, false, false),
		solana.NewAccountMeta(governance, true, false),
		solana.NewAccountMeta(proposal, true, false),
		solana.NewAccountMeta(proposalOwnerRecord, true, false),
		solana.NewAccountMeta(voterRecord, true, false),
		solana.NewAccountMeta(authority, false, true),
		solana.NewAccountMeta(voteRecord, true, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		solana.NewAccountMeta(realmConfig, false, false),
	}

	return newGovernanceInstruction(programID, InstructionCastVote, accounts, func(enc *bin.Encoder) error {
		switch vote {
		case types.VoteYes:
			// Approve(vec![VoteChoice { rank: 0, weight_percentage: 100 }])
			if err := enc.WriteUint8(voteApprove); err != nil {
				return err
			}
			if err := enc.WriteUint32(1, bin.LE); err != nil {
				return err
			}
			if err := enc.WriteUint8(0); err != nil {
				return err
			}

			return enc.WriteUint8(100)
		case types.VoteNo:
			return enc.WriteUint8(voteDeny)
		default:
			return fmt.Errorf("unsupported vote %s", vote)
		}
	})
}

// NewExecuteTransactionInstruction executes the stored instruction ix of proposalTransaction.
// The accounts of ix are passed through as given.
func NewExecuteTransactionInstruction(
	programID, governance, proposal, proposalTransaction solana.PublicKey, ix InstructionData,
) (solana.Instruction, error) {
	accounts := make(solana.AccountMetaSlice, 0, 4+len(ix.Accounts))
	accounts = append(accounts,
		solana.NewAccountMeta(governance, false, false),
		solana.NewAccountMeta(proposal, true, false),
		solana.NewAccountMeta(proposalTransaction, true, false),
		solana.NewAccountMeta(ix.ProgramID, false, false),
	)
	for _, meta := range ix.Accounts {
		accounts = append(accounts, solana.NewAccountMeta(meta.PublicKey, meta.IsWritable, meta.IsSigner))
	}

	return newGovernanceInstruction(programID, InstructionExecuteTransaction, accounts, nil)
}

// NewDepositGoverningTokensInstruction moves amount of mint from the owner's associated token
// account into the realm's holding account.
func NewDepositGoverningTokensInstruction(
	programID, realm, mint, owner, payer solana.PublicKey, amount uint64,
) (solana.Instruction, error) {
	holding, err := FindGoverningTokenHoldingPDA(programID, realm, mint)
	if err != nil {
		return nil, err
	}
	source, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("unable to find associated token account: %w", err)
	}
	tokenOwnerRecord, err := FindTokenOwnerRecordPDA(programID, realm, mint, owner)
	if err != nil {
		return nil, err
	}
	realmConfig, err := FindRealmConfigPDA(programID, realm)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(realm, false, false),
		solana.NewAccountMeta(holding, true, false),
		solana.NewAccountMeta(source, true, false),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(tokenOwnerRecord, true, false),
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		solana.NewAccountMeta(realmConfig, false, false),
	}

	return newGovernanceInstruction(programID, InstructionDepositGoverningTokens, accounts, func(enc *bin.Encoder) error {
		return enc.WriteUint64(amount, bin.LE)
	})
}

// NewWithdrawGoverningTokensInstruction returns the owner's whole deposit of mint to their
// associated token account.
func NewWithdrawGoverningTokensInstruction(programID, realm, mint, owner solana.PublicKey) (solana.Instruction, error) {
	holding, err := FindGoverningTokenHoldingPDA(programID, realm, mint)
	if err != nil {
		return nil, err
	}
	destination, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("unable to find associated token account: %w", err)
	}
	tokenOwnerRecord, err := FindTokenOwnerRecordPDA(programID, realm, mint, owner)
	if err != nil {
		return nil, err
	}
	realmConfig, err := FindRealmConfigPDA(programID, realm)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(realm, false, false),
		solana.NewAccountMeta(holding, true, false),
		solana.NewAccountMeta(destination, true, false),
		solana.NewAccountMeta(owner, false, true),
		solana.NewAccountMeta(tokenOwnerRecord, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(realmConfig, false, false),
	}

	return newGovernanceInstruction(programID, InstructionWithdrawGoverningTokens, accounts, nil)
}

// NewSetGovernanceConfigInstruction replaces the config of governance. The governance signs
// for itself, so the instruction is only valid inside a proposal transaction.
func NewSetGovernanceConfigInstruction(programID, governance solana.PublicKey, config GovernanceConfig) (solana.Instruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(governance, true, true),
	}

	return newGovernanceInstruction(programID, InstructionSetGovernanceConfig, accounts, config.MarshalWithEncoder)
}
