package themis

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/themis"
	solanasdk "github.com/smartcontractkit/themis/sdk/solana"
	"github.com/smartcontractkit/themis/types"
)

func testBuffers() []types.UpgradeableBuffer {
	authority := solana.MustPublicKeyFromBase58("8bvPnYE5Pvz2Z9dE6RAqWr1rzLknTndZ9hwvRE6kPDXP")

	return []types.UpgradeableBuffer{
		{
			Address:   solana.MustPublicKeyFromBase58("6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX"),
			Authority: authority,
			DataLen:   37,
			Lamports:  1_000,
		},
		{
			Address:   solana.MustPublicKeyFromBase58("5WvGqs9VCJXnRDgAxWrnrS1iqoYXb2NJy9KmGXqhfgZq"),
			Authority: authority,
			DataLen:   37,
			Lamports:  2_000,
		},
	}
}

func TestOutputFormat_Set(t *testing.T) {
	t.Parallel()

	var f outputFormat
	require.NoError(t, f.Set("JSON"))
	assert.Equal(t, outputJSON, f)
	require.NoError(t, f.Set("yaml"))
	assert.Equal(t, "yaml", f.String())
	require.ErrorContains(t, f.Set("csv"), `invalid output format "csv"`)
	assert.Equal(t, outputYAML, f)
}

func TestRenderBuffers(t *testing.T) {
	t.Parallel()

	buffers := testBuffers()
	authority := buffers[0].Authority

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderBuffers(&out, outputTable, authority, buffers))
		assert.Contains(t, out.String(), buffers[0].Address.String())
		assert.Contains(t, out.String(), buffers[1].Address.String())
		assert.Contains(t, strings.ToLower(out.String()), "2 buffers")
		assert.Contains(t, out.String(), "3000")
		assert.NotContains(t, strings.ToLower(out.String()), "data length")
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderBuffers(&out, outputTable, authority, nil))
		assert.Equal(t, "No buffers found for authority "+authority.String()+"\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderBuffers(&out, outputJSON, authority, buffers))

		var got []types.UpgradeableBuffer
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, buffers, got)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderBuffers(&out, outputYAML, authority, buffers))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, buffers[1].Address.String(), got[1]["address"])
		assert.Equal(t, 2000, got[1]["lamports"])
	})
}

func TestRenderGovernanceConfig(t *testing.T) {
	t.Parallel()

	cfg := solanasdk.GovernanceConfig{
		VoteThreshold:                    solanasdk.VoteThreshold{Type: solanasdk.VoteThresholdYesVote, Percentage: 60},
		MaxVotingTime:                    259200,
		VoteTipping:                      solanasdk.VoteTippingEarly,
		MinCouncilWeightToCreateProposal: 1,
	}

	var table bytes.Buffer
	require.NoError(t, renderGovernanceConfig(&table, outputTable, cfg))
	assert.Contains(t, table.String(), "YesVote 60%")
	assert.Contains(t, table.String(), "259200")
	assert.Contains(t, table.String(), "Early")

	var out bytes.Buffer
	require.NoError(t, renderGovernanceConfig(&out, outputYAML, cfg))
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 259200, got["maxVotingTime"])
	assert.Equal(t, map[string]any{"type": 0, "percentage": 60}, got["voteThreshold"])
}

func TestRenderTransaction(t *testing.T) {
	t.Parallel()

	t.Run("confirmed", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		require.NoError(t, renderProposal(&out, "propose", themis.ProposeResult{
			Proposal:          solana.MustPublicKeyFromBase58("6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX"),
			Index:             4,
			TransactionResult: types.TransactionResult{Hash: "sig", Slot: 12},
		}))
		assert.Contains(t, out.String(), "propose confirmed")
		assert.Contains(t, out.String(), "sig")
		assert.Contains(t, out.String(), "6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX")
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()

		program := solana.MustPublicKeyFromBase58("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw")
		account := solana.MustPublicKeyFromBase58("8bvPnYE5Pvz2Z9dE6RAqWr1rzLknTndZ9hwvRE6kPDXP")
		ix := solana.NewInstruction(program, solana.AccountMetaSlice{solana.Meta(account).WRITE()}, []byte{13, 1})

		var out bytes.Buffer
		require.NoError(t, renderTransaction(&out, "vote no", types.TransactionResult{
			RawData: []solana.Instruction{ix},
		}))
		assert.Contains(t, out.String(), "dry run: vote no was not submitted")
		assert.Contains(t, out.String(), program.String())
		assert.Contains(t, out.String(), account.String())
		assert.Contains(t, out.String(), "0d01")
	})
}
