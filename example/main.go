package main

import (
	"context"
	"log"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/smartcontractkit/themis"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

// Builds, without submitting, a council proposal upgrading a program on devnet.
func main() {
	ctx := context.Background()

	config := types.Config{
		GovernanceProgramID: solana.MustPublicKeyFromBase58("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw"),
		RealmID:             solana.MustPublicKeyFromBase58(os.Getenv("REALM_ID")),
		GovernanceID:        solana.MustPublicKeyFromBase58(os.Getenv("GOVERNANCE_ID")),
		ProgramID:           solana.MustPublicKeyFromBase58(os.Getenv("PROGRAM_ID")),
		ProgramDataID:       solana.MustPublicKeyFromBase58(os.Getenv("PROGRAM_DATA")),
	}
	signer, err := solana.PrivateKeyFromSolanaKeygenFile(os.Getenv("KEYPAIR"))
	if err != nil {
		log.Fatalf("failed to load keypair: %v", err)
	}

	client := rpc.New(rpc.DevNet_RPC)
	governor, err := themis.NewGovernor(config, signer,
		solanasdk.NewInspector(client),
		solanasdk.NewSubmitter(client),
		themis.WithDryRun(),
		themis.WithBufferScanner(solanasdk.NewBufferScanner(client, solana.BPFLoaderUpgradeableProgramID)),
	)
	if err != nil {
		log.Fatalf("failed to create governor: %v", err)
	}

	buffers, err := governor.GetBuffers(ctx, solana.PublicKey{})
	if err != nil {
		log.Fatalf("failed to list buffers: %v", err)
	}
	if len(buffers) == 0 {
		log.Fatalf("no buffer held by governance %s", config.GovernanceID)
	}

	result, err := governor.ProposeUpgrade(ctx, themis.ProposeUpgradeRequest{
		ProposalMeta: themis.ProposalMeta{
			Name:        "Upgrade v2",
			Description: "bump version",
			MintType:    types.MintTypeCouncil,
		},
		Buffer: buffers[0].Address,
	})
	if err != nil {
		log.Fatalf("failed to build proposal: %v", err)
	}
	log.Printf("proposal %d at %s: %d instructions", result.Index, result.Proposal, len(result.RawData))
}
