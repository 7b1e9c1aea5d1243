package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMintType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    MintType
		wantErr string
	}{
		{name: "success: member", give: "member", want: MintTypeMember},
		{name: "success: council", give: "council", want: MintTypeCouncil},
		{name: "success: mixed case", give: "Council", want: MintTypeCouncil},
		{name: "failure: unknown", give: "community", wantErr: `invalid mint type: "community" (want member or council)`},
		{name: "failure: empty", give: "", wantErr: `invalid mint type: "" (want member or council)`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMintType(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				require.ErrorIs(t, err, ErrInvalidMintType)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMintType_FlagValue(t *testing.T) {
	t.Parallel()

	var mt MintType
	require.NoError(t, mt.Set("COUNCIL"))
	assert.Equal(t, MintTypeCouncil, mt)
	assert.Equal(t, "council", mt.String())
	assert.Equal(t, "mint-type", mt.Type())

	require.Error(t, mt.Set("nope"))
	assert.Equal(t, MintTypeCouncil, mt)

	text, err := MintTypeMember.MarshalText()
	require.NoError(t, err)
	require.NoError(t, mt.UnmarshalText(text))
	assert.Equal(t, MintTypeMember, mt)
}
