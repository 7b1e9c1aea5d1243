package themis

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/themis"
	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
)

const (
	flagVoteThreshold      = "vote-threshold"
	flagMinCommunityWeight = "min-community-weight"
	flagMinCouncilWeight   = "min-council-weight"
	flagHoldUpTime         = "hold-up-time"
	flagMaxVotingTime      = "max-voting-time"
	flagCoolOffTime        = "cool-off-time"
)

// configFlags holds the governance config overrides. Only flags set on the command line end up
// in the patch.
type configFlags struct {
	voteThreshold      uint8
	minCommunityWeight uint64
	minCouncilWeight   uint64
	holdUpTime         uint32
	maxVotingTime      uint32
	coolOffTime        uint32
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint8Var(&f.voteThreshold, flagVoteThreshold, 0, "Yes vote threshold percentage")
	cmd.Flags().Uint64Var(&f.minCommunityWeight, flagMinCommunityWeight, 0, "Min community weight to create a proposal")
	cmd.Flags().Uint64Var(&f.minCouncilWeight, flagMinCouncilWeight, 0, "Min council weight to create a proposal")
	cmd.Flags().Uint32Var(&f.holdUpTime, flagHoldUpTime, 0, "Min transaction hold up time in seconds")
	cmd.Flags().Uint32Var(&f.maxVotingTime, flagMaxVotingTime, 0, "Max voting time in seconds")
	cmd.Flags().Uint32Var(&f.coolOffTime, flagCoolOffTime, 0, "Proposal cool off time in seconds")
}

func (f *configFlags) patch(cmd *cobra.Command) solanasdk.GovernanceConfigPatch {
	var p solanasdk.GovernanceConfigPatch
	changed := cmd.Flags().Changed
	if changed(flagVoteThreshold) {
		p.VoteThresholdPercentage = &f.voteThreshold
	}
	if changed(flagMinCommunityWeight) {
		p.MinCommunityWeightToCreateProposal = &f.minCommunityWeight
	}
	if changed(flagMinCouncilWeight) {
		p.MinCouncilWeightToCreateProposal = &f.minCouncilWeight
	}
	if changed(flagHoldUpTime) {
		p.MinTransactionHoldUpTime = &f.holdUpTime
	}
	if changed(flagMaxVotingTime) {
		p.MaxVotingTime = &f.maxVotingTime
	}
	if changed(flagCoolOffTime) {
		p.ProposalCoolOffTime = &f.coolOffTime
	}

	return p
}

func buildUpdateCmd() *cobra.Command {
	var (
		proposal  proposalFlags
		overrides configFlags
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Propose a governance config change",
		Long: `Reads the current governance config, applies the given overrides and proposes the result.
Settings without a flag keep their current value.`,
		Example: "  themis update --vote-threshold 60 --max-voting-time 259200 --mint-type council",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := themis.UpdateRequest{ProposalMeta: proposal.meta(), Patch: overrides.patch(cmd)}
			if req.Patch.IsEmpty() {
				return sdkerrors.WrapUsageError(themis.ErrEmptyConfigPatch)
			}

			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := withSpinner(a, "Submitting proposal...", func() (themis.ProposeResult, error) {
				return a.governor.Update(ctx, req)
			})
			if err != nil {
				return err
			}

			return renderProposal(a.out, "update", result)
		},
	}

	proposal.register(cmd, "Update governance config")
	overrides.register(cmd)

	return cmd
}

func buildGetGovConfigCmd() *cobra.Command {
	var format outputFormat

	cmd := &cobra.Command{
		Use:   "get-gov-config",
		Short: "Print the current governance config",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			cfg, err := a.governor.GetGovernanceConfig(ctx)
			if err != nil {
				return err
			}

			return renderGovernanceConfig(a.out, format, cfg)
		},
	}

	registerOutput(cmd, &format)

	return cmd
}
