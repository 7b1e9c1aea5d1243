package themis

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/themis"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

// proposalFlags are shared by the commands that create a proposal.
type proposalFlags struct {
	name        string
	description string
	options     []string
	mintType    types.MintType
}

func (f *proposalFlags) register(cmd *cobra.Command, defaultName string) {
	cmd.Flags().StringVarP(&f.name, "name", "n", defaultName, "Proposal name")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Proposal description")
	cmd.Flags().StringSliceVar(&f.options, "option", nil, "Vote option label, repeatable (default single_vote)")
	registerMintType(cmd, &f.mintType)
}

func (f *proposalFlags) meta() themis.ProposalMeta {
	return themis.ProposalMeta{
		Name:        f.name,
		Description: f.description,
		MintType:    f.mintType,
		Options:     f.options,
	}
}

func registerMintType(cmd *cobra.Command, mintType *types.MintType) {
	cmd.Flags().VarP(mintType, "mint-type", "m", "Governing token: member or council")
}

// selectorFlags pick the proposal vote and execute operate on.
type selectorFlags struct {
	id     string
	latest bool
}

func (f *selectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.id, "proposal", "p", "", "Proposal address")
	cmd.Flags().BoolVarP(&f.latest, "latest", "l", false, "Use the governance's most recent proposal")
}

// selector parses and validates the flags without any network access.
func (f *selectorFlags) selector() (themis.ProposalSelector, error) {
	sel := themis.ProposalSelector{Latest: f.latest}
	if f.id != "" && !f.latest {
		id, err := parsePublicKey("proposal", f.id)
		if err != nil {
			return themis.ProposalSelector{}, err
		}
		sel.ID = id
	}

	return sel, sel.Validate()
}

// parsePublicKey parses an optional account flag. Empty yields the zero key.
func parsePublicKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, sdkerrors.NewUsageError("invalid --%s %q: %v", name, value, err)
	}

	return key, nil
}

// requirePublicKey is parsePublicKey for mandatory flags.
func requirePublicKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, sdkerrors.NewUsageError("--%s is required", name)
	}

	return parsePublicKey(name, value)
}

func registerOutput(cmd *cobra.Command, format *outputFormat) {
	*format = outputTable
	cmd.Flags().VarP(format, "output", "o", fmt.Sprintf("Output format: %s, %s or %s", outputTable, outputJSON, outputYAML))
}
