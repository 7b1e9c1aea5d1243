package themis

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/themis"
)

func buildProposeCmd() *cobra.Command {
	var (
		proposal proposalFlags
		buffer   string
		spill    string
	)

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Propose upgrading the program from a buffer",
		Long: `Creates a proposal whose only transaction upgrades --program-id from --buffer, adds the
caller as its signatory and signs it off, all in one transaction. The buffer authority must be
the governance.`,
		Example: `  themis propose --buffer <BUFFER> --name "Upgrade v2" --description "bump version" --mint-type council`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bufferID, err := requirePublicKey("buffer", buffer)
			if err != nil {
				return err
			}
			spillID, err := parsePublicKey("spill", spill)
			if err != nil {
				return err
			}

			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := withSpinner(a, "Submitting proposal...", func() (themis.ProposeResult, error) {
				return a.governor.ProposeUpgrade(ctx, themis.ProposeUpgradeRequest{
					ProposalMeta: proposal.meta(),
					Buffer:       bufferID,
					Spill:        spillID,
				})
			})
			if err != nil {
				return err
			}

			return renderProposal(a.out, "propose", result)
		},
	}

	proposal.register(cmd, "")
	cmd.Flags().StringVarP(&buffer, "buffer", "b", "", "Buffer holding the new program")
	cmd.Flags().StringVar(&spill, "spill", "", "Account receiving the buffer's lamports (default the caller)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("buffer")

	return cmd
}
