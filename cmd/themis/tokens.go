package themis

import (
	"github.com/spf13/cobra"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

func buildDepositCmd() *cobra.Command {
	var (
		mintType types.MintType
		amount   uint64
	)

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit governing tokens from the caller's token account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount == 0 {
				return sdkerrors.NewUsageError("--amount must be greater than 0")
			}

			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := withSpinner(a, "Depositing...", func() (types.TransactionResult, error) {
				return a.governor.Deposit(ctx, mintType, amount)
			})
			if err != nil {
				return err
			}

			return renderTransaction(a.out, "deposit", result)
		},
	}

	registerMintType(cmd, &mintType)
	cmd.Flags().Uint64VarP(&amount, "amount", "a", 0, "Amount in the mint's base units")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func buildWithdrawCmd() *cobra.Command {
	var mintType types.MintType

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw the caller's whole deposit of governing tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := withSpinner(a, "Withdrawing...", func() (types.TransactionResult, error) {
				return a.governor.Withdraw(ctx, mintType)
			})
			if err != nil {
				return err
			}

			return renderTransaction(a.out, "withdraw", result)
		},
	}

	registerMintType(cmd, &mintType)

	return cmd
}
