package solana

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	governanceSeed  = []byte("governance")
	realmConfigSeed = []byte("realm-config")
)

// FindTokenOwnerRecordPDA derives the stake record of owner for mint within realm.
func FindTokenOwnerRecordPDA(programID, realm, mint, owner solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{governanceSeed, realm.Bytes(), mint.Bytes(), owner.Bytes()}
	return findPDA(programID, "token owner record", seeds)
}

// FindProposalPDA derives the proposal created at index under governance for mint.
func FindProposalPDA(programID, governance, mint solana.PublicKey, index uint32) (solana.PublicKey, error) {
	seeds := [][]byte{governanceSeed, governance.Bytes(), mint.Bytes(), binary.LittleEndian.AppendUint32(nil, index)}
	return findPDA(programID, "proposal", seeds)
}

// FindProposalTransactionPDA derives the instruction bundle stored at (optionIndex, txIndex) of proposal.
func FindProposalTransactionPDA(programID, proposal solana.PublicKey, optionIndex uint8, txIndex uint16) (solana.PublicKey, error) {
	seeds := [][]byte{governanceSeed, proposal.Bytes(), {optionIndex}, binary.LittleEndian.AppendUint16(nil, txIndex)}
	return findPDA(programID, "proposal transaction", seeds)
}

func FindSignatoryRecordPDA(programID, proposal, signatory solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{governanceSeed, proposal.Bytes(), signatory.Bytes()}
	return findPDA(programID, "signatory record", seeds)
}

func FindVoteRecordPDA(programID, proposal, tokenOwnerRecord solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{governanceSeed, proposal.Bytes(), tokenOwnerRecord.Bytes()}
	return findPDA(programID, "vote record", seeds)
}

// FindGoverningTokenHoldingPDA derives the realm's escrow for deposited tokens of mint.
func FindGoverningTokenHoldingPDA(programID, realm, mint solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{governanceSeed, realm.Bytes(), mint.Bytes()}
	return findPDA(programID, "governing token holding", seeds)
}

func FindRealmConfigPDA(programID, realm solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{realmConfigSeed, realm.Bytes()}
	return findPDA(programID, "realm config", seeds)
}

func findPDA(programID solana.PublicKey, kind string, seeds [][]byte) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to find %s pda: %w", kind, err)
	}

	return pda, nil
}
