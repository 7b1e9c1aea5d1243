package themis

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/themis"
	"github.com/smartcontractkit/themis/types"
)

func buildVoteCmd() *cobra.Command {
	var (
		selector selectorFlags
		mintType types.MintType
		vote     types.Vote
	)

	cmd := &cobra.Command{
		Use:     "vote",
		Short:   "Cast the caller's vote on a proposal",
		Example: "  themis vote --latest --vote yes --mint-type council",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selector.selector()
			if err != nil {
				return err
			}

			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := withSpinner(a, "Casting vote...", func() (types.TransactionResult, error) {
				return a.governor.Vote(ctx, themis.VoteRequest{Selector: sel, MintType: mintType, Vote: vote})
			})
			if err != nil {
				return err
			}

			return renderTransaction(a.out, "vote "+vote.String(), result)
		},
	}

	selector.register(cmd)
	registerMintType(cmd, &mintType)
	cmd.Flags().VarP(&vote, "vote", "v", "yes or no")
	_ = cmd.MarkFlagRequired("vote")

	return cmd
}
