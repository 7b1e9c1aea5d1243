package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
)

var (
	testGovernanceProgram = solana.MustPublicKeyFromBase58("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw")
	testRealm             = solana.MustPublicKeyFromBase58("6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX")
	testGovernance        = solana.MustPublicKeyFromBase58("8bvPnYE5Pvz2Z9dE6RAqWr1rzLknTndZ9hwvRE6kPDXP")
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		program   solana.PublicKey
		realm     solana.PublicKey
		gov       solana.PublicKey
		wantField string
	}{
		{name: "success", program: testGovernanceProgram, realm: testRealm, gov: testGovernance},
		{name: "failure: missing program", realm: testRealm, gov: testGovernance, wantField: "governanceProgramId"},
		{name: "failure: missing realm", program: testGovernanceProgram, gov: testGovernance, wantField: "realmId"},
		{name: "failure: missing governance", program: testGovernanceProgram, realm: testRealm, wantField: "governanceId"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConfig(tt.program, tt.realm, tt.gov)

			if tt.wantField != "" {
				var cfgErr *sdkerrors.ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.wantField, cfgErr.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, solana.BPFLoaderUpgradeableProgramID, got.LoaderProgramID)
		})
	}
}

func TestConfig_ValidateUpgradeTarget(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(testGovernanceProgram, testRealm, testGovernance)
	require.NoError(t, err)

	err = cfg.ValidateUpgradeTarget()
	require.EqualError(t, err, "configuration error: programId: is required to build an upgrade")

	cfg.ProgramID = testRealm
	err = cfg.ValidateUpgradeTarget()
	require.EqualError(t, err, "configuration error: programDataId: is required to build an upgrade")

	cfg.ProgramDataID = testGovernance
	require.NoError(t, cfg.ValidateUpgradeTarget())
}

func TestConfig_WithDefaultsKeepsLoader(t *testing.T) {
	t.Parallel()

	loader := solana.MustPublicKeyFromBase58("BPFLoader2111111111111111111111111111111111")
	cfg := Config{LoaderProgramID: loader}.WithDefaults()
	assert.Equal(t, loader, cfg.LoaderProgramID)
}
