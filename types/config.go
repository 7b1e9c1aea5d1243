package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Config holds the on-chain identities every lifecycle action is bound to.
type Config struct {
	// GovernanceProgramID is the spl-governance compatible program that owns the realm.
	GovernanceProgramID solana.PublicKey `json:"governanceProgramId" validate:"required"`
	RealmID             solana.PublicKey `json:"realmId" validate:"required"`
	GovernanceID        solana.PublicKey `json:"governanceId" validate:"required"`

	// ProgramID and ProgramDataID identify the upgrade target. Only the propose action needs them.
	ProgramID     solana.PublicKey `json:"programId,omitempty"`
	ProgramDataID solana.PublicKey `json:"programDataId,omitempty"`

	// LoaderProgramID owns upgrade buffers; defaults to the upgradeable BPF loader.
	LoaderProgramID solana.PublicKey `json:"loaderProgramId,omitempty"`
}

// NewConfig returns a validated config with defaults applied.
func NewConfig(governanceProgram, realm, governance solana.PublicKey) (Config, error) {
	config := Config{
		GovernanceProgramID: governanceProgram,
		RealmID:             realm,
		GovernanceID:        governance,
	}.WithDefaults()

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// WithDefaults fills the loader program when unset.
func (c Config) WithDefaults() Config {
	if c.LoaderProgramID.IsZero() {
		c.LoaderProgramID = solana.BPFLoaderUpgradeableProgramID
	}

	return c
}

// Validate checks that every required identity is present.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return sdkerrors.NewConfigurationError(verrs[0].Field(), "is required")
	}

	return sdkerrors.NewConfigurationError("config", err.Error())
}

// ValidateUpgradeTarget checks the identities needed to build a program upgrade.
func (c Config) ValidateUpgradeTarget() error {
	if c.ProgramID.IsZero() {
		return sdkerrors.NewConfigurationError("programId", "is required to build an upgrade")
	}
	if c.ProgramDataID.IsZero() {
		return sdkerrors.NewConfigurationError("programDataId", "is required to build an upgrade")
	}

	return nil
}
