package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/themis/internal/utils/layout"
)

func TestDecodeBufferState(t *testing.T) {
	t.Parallel()

	authority := randomPublicKey(t)
	withAuthority := append([]byte{1, 0, 0, 0, 1}, authority.Bytes()...)
	withAuthority = append(withAuthority, 0xde, 0xad, 0xbe, 0xef) // program bytes

	tests := []struct {
		name    string
		give    []byte
		want    BufferState
		wantErr error
	}{
		{name: "buffer with authority", give: withAuthority, want: BufferState{Authority: &authority}},
		{name: "buffer without authority", give: []byte{1, 0, 0, 0, 0}, want: BufferState{}},
		{name: "uninitialized", give: []byte{0, 0, 0, 0, 0}, wantErr: ErrNotABuffer},
		{name: "program", give: append([]byte{2, 0, 0, 0}, authority.Bytes()...), wantErr: ErrNotABuffer},
		{name: "program data", give: []byte{3, 0, 0, 0, 0, 0, 0, 0}, wantErr: ErrNotABuffer},
		{name: "truncated tag", give: []byte{1, 0}, wantErr: layout.ErrTruncated},
		{name: "truncated authority", give: []byte{1, 0, 0, 0, 1, 7}, wantErr: layout.ErrTruncated},
		{name: "invalid presence flag", give: []byte{1, 0, 0, 0, 2}, wantErr: layout.ErrInvalidFlag},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeBufferState(tt.give)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBufferLayout_Offsets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, BufferLayout.MustField("state").Offset)
	assert.Equal(t, 4, BufferLayout.MustField("authority_present").Offset)
	assert.Equal(t, 5, BufferLayout.MustField("authority").Offset)
	assert.Equal(t, 37, BufferLayout.Len())
}

func TestNewUpgradeInstruction(t *testing.T) {
	t.Parallel()

	programData, program, buffer, spill, authority := randomPublicKey(t), randomPublicKey(t),
		randomPublicKey(t), randomPublicKey(t), randomPublicKey(t)

	ix := NewUpgradeInstruction(solana.BPFLoaderUpgradeableProgramID, programData, program, buffer, spill, authority)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 0, 0, 0}, data)
	assert.Equal(t, solana.BPFLoaderUpgradeableProgramID, ix.ProgramID())
	assert.Equal(t, []*solana.AccountMeta{
		{PublicKey: programData, IsWritable: true},
		{PublicKey: program, IsWritable: true},
		{PublicKey: buffer, IsWritable: true},
		{PublicKey: spill, IsWritable: true},
		{PublicKey: solana.SysVarRentPubkey},
		{PublicKey: solana.SysVarClockPubkey},
		{PublicKey: authority, IsWritable: true, IsSigner: true},
	}, []*solana.AccountMeta(ix.Accounts()))
}

func TestNewCloseBufferInstruction(t *testing.T) {
	t.Parallel()

	buffer, recipient := randomPublicKey(t), randomPublicKey(t)

	ix := NewCloseBufferInstruction(solana.BPFLoaderUpgradeableProgramID, buffer, recipient, testGovernanceID)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 0, 0, 0}, data)
	assert.Equal(t, []*solana.AccountMeta{
		{PublicKey: buffer, IsWritable: true},
		{PublicKey: recipient, IsWritable: true},
		{PublicKey: testGovernanceID, IsSigner: true},
	}, []*solana.AccountMeta(ix.Accounts()))
}
