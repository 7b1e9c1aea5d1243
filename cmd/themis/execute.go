package themis

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/themis"
	"github.com/smartcontractkit/themis/types"
)

func buildExecuteCmd() *cobra.Command {
	var (
		selector selectorFlags
		mintType types.MintType
	)

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Execute the transaction of a passed proposal",
		Long: `Executes the last transaction of the proposal's first option. The proposal must have
succeeded and its hold up time must have elapsed.`,
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

			result, err := withSpinner(a, "Executing proposal...", func() (types.TransactionResult, error) {
				return a.governor.Execute(ctx, themis.ExecuteRequest{Selector: sel, MintType: mintType})
			})
			if err != nil {
				return err
			}

			return renderTransaction(a.out, "execute", result)
		},
	}

	selector.register(cmd)
	registerMintType(cmd, &mintType)

	return cmd
}
