package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

// Keys shared by flags, environment variables and config files.
const (
	KeyConfig              = "config"
	KeyKeypair             = "keypair"
	KeyURL                 = "url"
	KeyLogLevel            = "log-level"
	KeyDryRun              = "dry-run"
	KeyTimeout             = "timeout"
	KeyGovernanceProgramID = "governance-program-id"
	KeyRealmID             = "realm-id"
	KeyGovernanceID        = "governance-id"
	KeyProgramID           = "program-id"
	KeyProgramDataID       = "program-data-id"
	KeyLoaderProgramID     = "loader-program-id"
)

const (
	EnvPrefix      = "THEMIS"
	configName     = "themis"
	defaultEnvFile = ".env"
)

// legacyEnv lists unprefixed variables still honoured for a key.
var legacyEnv = map[string][]string{
	KeyRealmID:       {"REALM_ID"},
	KeyGovernanceID:  {"GOVERNANCE_ID"},
	KeyProgramID:     {"PROGRAM_ID"},
	KeyProgramDataID: {"PROGRAM_DATA"},
}

// RuntimeConfig is the configuration of one invocation, resolved once.
type RuntimeConfig struct {
	Config      types.Config
	KeypairPath string
	RPCURL      string
	LogLevel    string
	DryRun      bool
	Timeout     time.Duration
}

// SetupViper creates a viper instance resolving, from highest precedence: flags of cmd,
// THEMIS_* and legacy environment variables, a .env file in the working directory, the config
// file and defaults.
func SetupViper(cmd *cobra.Command) (*viper.Viper, error) {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", defaultEnvFile, err)
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		envs := append([]string{envName(key)}, names...)
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, err
		}
	}

	v.SetDefault(KeyURL, ClusterDevnet)
	v.SetDefault(KeyKeypair, DefaultKeypairPath())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyTimeout, "2m")
	v.SetDefault(KeyLoaderProgramID, solana.BPFLoaderUpgradeableProgramID.String())

	if err := readConfigFile(v, cmd); err != nil {
		return nil, err
	}

	var bindErr error
	visit := func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	}
	cmd.Flags().VisitAll(visit)
	cmd.InheritedFlags().VisitAll(visit)
	if bindErr != nil {
		return nil, bindErr
	}

	return v, nil
}

func readConfigFile(v *viper.Viper, cmd *cobra.Command) error {
	if f := cmd.Flag(KeyConfig); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", f.Value.String(), err)
		}

		return nil
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// Provider builds the RuntimeConfig from v. Program identities are validated here; the keypair
// file is only read when a session is opened.
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	rpcURL, err := ResolveRPCURL(v.GetString(KeyURL))
	if err != nil {
		return nil, err
	}

	keys := map[string]*solana.PublicKey{}
	cfg := &RuntimeConfig{
		KeypairPath: v.GetString(KeyKeypair),
		RPCURL:      rpcURL,
		LogLevel:    v.GetString(KeyLogLevel),
		DryRun:      v.GetBool(KeyDryRun),
		Timeout:     v.GetDuration(KeyTimeout),
	}
	keys[KeyGovernanceProgramID] = &cfg.Config.GovernanceProgramID
	keys[KeyRealmID] = &cfg.Config.RealmID
	keys[KeyGovernanceID] = &cfg.Config.GovernanceID
	keys[KeyProgramID] = &cfg.Config.ProgramID
	keys[KeyProgramDataID] = &cfg.Config.ProgramDataID
	keys[KeyLoaderProgramID] = &cfg.Config.LoaderProgramID

	for key, target := range keys {
		raw := strings.TrimSpace(v.GetString(key))
		if raw == "" {
			continue
		}
		parsed, err := solana.PublicKeyFromBase58(raw)
		if err != nil {
			return nil, sdkerrors.NewConfigurationError(key, fmt.Sprintf("invalid public key %q: %v", raw, err))
		}
		*target = parsed
	}

	cfg.Config = cfg.Config.WithDefaults()
	if err := cfg.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%w (set --%s, --%s and --%s or %s_REALM_ID / %s_GOVERNANCE_ID)",
			err, KeyGovernanceProgramID, KeyRealmID, KeyGovernanceID, EnvPrefix, EnvPrefix)
	}

	return cfg, nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}
