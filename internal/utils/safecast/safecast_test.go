package safecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_IntToUint8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    int
		want    uint8
		wantErr bool
	}{
		{name: "Valid int within range", give: 2, want: 2},
		{name: "Max uint8", give: math.MaxUint8, want: math.MaxUint8},
		{name: "Negative int", give: -1, wantErr: true},
		{name: "Int exceeds uint8 max value", give: math.MaxUint8 + 1, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := IntToUint8(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_IntToUint32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    int
		want    uint32
		wantErr bool
	}{
		{name: "Valid int within range", give: 259200, want: 259200},
		{name: "Negative int", give: -5, wantErr: true},
		{name: "Int exceeds uint32 max value", give: int(math.MaxUint32 + 1), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := IntToUint32(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
