package themis

import (
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/themis/internal/config"
)

func BuildThemisCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "themis",
		Short: "Upgrade Solana programs through spl-governance proposals",
		Long: `themis creates, votes on and executes spl-governance proposals that upgrade a program,
manages governing token deposits and governance config changes, and cleans up loader buffers
held by the governance.

Identities are read from flags, THEMIS_* environment variables, a .env file or a themis.yaml
config file, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String(config.KeyConfig, "", "Config file (default ./themis.yaml or ~/.config/themis/themis.yaml)")
	flags.StringP(config.KeyKeypair, "k", "", "Solana keypair file paying for and signing transactions (default ~/.config/solana/id.json)")
	flags.StringP(config.KeyURL, "u", "", "RPC url or cluster moniker: devnet, testnet, mainnet-beta, localnet (default devnet)")
	flags.String(config.KeyLogLevel, "", "Log level: debug, info, warn, error (default info)")
	flags.Bool(config.KeyDryRun, false, "Build and print instructions without submitting them")
	flags.Duration(config.KeyTimeout, 0, "Deadline for the whole command (default 2m)")
	flags.String(config.KeyGovernanceProgramID, "", "spl-governance program id (required)")
	flags.String(config.KeyRealmID, "", "Realm address")
	flags.String(config.KeyGovernanceID, "", "Governance address")
	flags.String(config.KeyProgramID, "", "Program to upgrade")
	flags.String(config.KeyProgramDataID, "", "Program data account of the program to upgrade")
	flags.String(config.KeyLoaderProgramID, "", "Upgradeable loader program id")

	cmd.AddCommand(buildProposeCmd())
	cmd.AddCommand(buildVoteCmd())
	cmd.AddCommand(buildExecuteCmd())
	cmd.AddCommand(buildDepositCmd())
	cmd.AddCommand(buildWithdrawCmd())
	cmd.AddCommand(buildUpdateCmd())
	cmd.AddCommand(buildGetGovConfigCmd())
	cmd.AddCommand(buildGetBuffersCmd())
	cmd.AddCommand(buildCloseBuffersCmd())

	return &cmd
}
