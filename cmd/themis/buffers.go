package themis

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/themis"
)

func buildGetBuffersCmd() *cobra.Command {
	var (
		authority string
		format    outputFormat
	)

	cmd := &cobra.Command{
		Use:   "get-buffers",
		Short: "List the loader buffers held by an authority",
		RunE: func(cmd *cobra.Command, args []string) error {
			authorityID, err := parsePublicKey("authority", authority)
			if err != nil {
				return err
			}

			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if authorityID.IsZero() {
				authorityID = a.governor.Config().GovernanceID
			}
			buffers, err := a.governor.GetBuffers(ctx, authorityID)
			if err != nil {
				return err
			}

			return renderBuffers(a.out, format, authorityID, buffers)
		},
	}

	cmd.Flags().StringVar(&authority, "authority", "", "Buffer authority (default the governance)")
	registerOutput(cmd, &format)

	return cmd
}

func buildCloseBuffersCmd() *cobra.Command {
	var (
		proposal  proposalFlags
		authority string
		recipient string
		spill     string
	)

	cmd := &cobra.Command{
		Use:   "close-buffers",
		Short: "Propose closing the buffers held by the governance",
		Long: `Proposes closing up to 10 buffers held by --authority and returning their lamports to
--recipient. Run it again once the proposal executed to close the rest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := themis.CloseBuffersRequest{ProposalMeta: proposal.meta()}
			var err error
			if req.Authority, err = parsePublicKey("authority", authority); err != nil {
				return err
			}
			if req.Recipient, err = parsePublicKey("recipient", recipient); err != nil {
				return err
			}
			if req.Spill, err = parsePublicKey("spill", spill); err != nil {
				return err
			}

			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := withSpinner(a, "Submitting proposal...", func() (themis.CloseBuffersResult, error) {
				return a.governor.CloseBuffers(ctx, req)
			})
			if err != nil {
				return err
			}

			if err := renderProposal(a.out, "close-buffers", result.ProposeResult); err != nil {
				return err
			}
			printField(a.out, "Buffers", len(result.Buffers))
			for _, b := range result.Buffers {
				fmt.Fprintf(a.out, "    %s\n", b.Address)
			}

			return nil
		},
	}

	proposal.register(cmd, "Close upgrade buffers")
	cmd.Flags().StringVar(&authority, "authority", "", "Buffer authority signing the close (default the governance)")
	cmd.Flags().StringVar(&recipient, "recipient", "", "Account receiving the lamports (default --spill, then the caller)")
	cmd.Flags().StringVar(&spill, "spill", "", "Fallback recipient")

	return cmd
}
