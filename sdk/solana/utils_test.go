package solana

import (
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/themis/sdk/solana/mocks"
	"github.com/smartcontractkit/themis/types"
)

var (
	testGovernanceProgramID = solana.MustPublicKeyFromBase58("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw")
	testRealmID             = solana.MustPublicKeyFromBase58("6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQX")
	testGovernanceID        = solana.MustPublicKeyFromBase58("8bvPnYE5Pvz2Z9dE6RAqWr1rzLknTndZ9hwvRE6kPDXP")
	testProgramID           = solana.MustPublicKeyFromBase58("6UmMZr5MEqiKWD5jqTJd1WCR5kT8oZuFYBLJFi1o6GQY")
	testProgramDataID       = solana.MustPublicKeyFromBase58("5WvGqs9VCJXnRDgAxWrnrS1iqoYXb2NJy9KmGXqhfgZq")
)

var anyContext = mock.MatchedBy(func(_ context.Context) bool { return true })

func testConfig(t *testing.T) types.Config {
	t.Helper()

	cfg, err := types.NewConfig(testGovernanceProgramID, testRealmID, testGovernanceID)
	require.NoError(t, err)
	cfg.ProgramID = testProgramID
	cfg.ProgramDataID = testProgramDataID

	return cfg
}

func newMockClient(t *testing.T) (*rpc.Client, *mocks.JSONRPCClient) {
	t.Helper()

	mockJSONRPCClient := mocks.NewJSONRPCClient(t)

	return rpc.NewWithCustomRPCClient(mockJSONRPCClient), mockJSONRPCClient
}

// mockGetAccountInfo serves accountInfo borsh encoded, or raw when it is a []byte. A nil
// accountInfo reports a missing account.
func mockGetAccountInfo(
	t *testing.T, mockJSONRPCClient *mocks.JSONRPCClient, account solana.PublicKey, accountInfo any,
	mockError error,
) {
	t.Helper()

	mockJSONRPCClient.EXPECT().CallForInto(anyContext, mock.Anything, "getAccountInfo", []any{
		account, rpc.M{"commitment": rpc.CommitmentConfirmed, "encoding": solana.EncodingBase64},
	},
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(**rpc.GetAccountInfoResult)
		require.True(t, ok)

		if accountInfo == nil {
			*result = &rpc.GetAccountInfoResult{Value: nil}
			return mockError
		}

		data, isRaw := accountInfo.([]byte)
		if !isRaw {
			var err error
			data, err = bin.MarshalBorsh(accountInfo)
			require.NoError(t, err)
		}

		*result = &rpc.GetAccountInfoResult{Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)}}

		return mockError
	}).Once()
}

func mockLatestBlockhash(t *testing.T, client *mocks.JSONRPCClient, lastValidBlockHeight uint64, mockError error) {
	t.Helper()

	client.EXPECT().CallForInto(
		anyContext, mock.Anything, "getLatestBlockhash", []any{rpc.M{"commitment": rpc.CommitmentFinalized}},
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(**rpc.GetLatestBlockhashResult)
		require.True(t, ok)

		*result = &rpc.GetLatestBlockhashResult{Value: &rpc.LatestBlockhashResult{
			Blockhash:            solana.MustHashFromBase58(randomPublicKey(t).String()),
			LastValidBlockHeight: lastValidBlockHeight,
		}}

		return mockError
	}).Once()
}

func mockSendTransaction(t *testing.T, client *mocks.JSONRPCClient, signature string, mockError error) {
	t.Helper()

	client.EXPECT().CallForInto(
		anyContext, mock.Anything, "sendTransaction", sendTransactionParams(t),
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(*solana.Signature)
		require.True(t, ok)
		if mockError == nil {
			*result = solana.MustSignatureFromBase58(signature)
		}

		return mockError
	}).Once()
}

func mockSignatureStatus(t *testing.T, client *mocks.JSONRPCClient, status *rpc.SignatureStatusesResult) {
	t.Helper()

	client.EXPECT().CallForInto(
		anyContext, mock.Anything, "getSignatureStatuses", mock.Anything,
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(**rpc.GetSignatureStatusesResult)
		require.True(t, ok)
		*result = &rpc.GetSignatureStatusesResult{Value: []*rpc.SignatureStatusesResult{status}}

		return nil
	}).Once()
}

func mockBlockHeight(t *testing.T, client *mocks.JSONRPCClient, height uint64) {
	t.Helper()

	client.EXPECT().CallForInto(
		anyContext, mock.Anything, "getBlockHeight", mock.Anything,
	).RunAndReturn(func(_ context.Context, output any, _ string, _ []any) error {
		result, ok := output.(*uint64)
		require.True(t, ok)
		*result = height

		return nil
	}).Once()
}

var sendTransactionParams = func(t *testing.T) any {
	t.Helper()

	return mock.MatchedBy(func(args []any) bool {
		if len(args) == 1 {
			_, isMap := args[0].(rpc.M)

			return isMap
		}
		if len(args) == 2 {
			_, isString := args[0].(string)
			_, isMap := args[1].(rpc.M)

			return isString && isMap
		}

		return false
	})
}

func randomPublicKey(t *testing.T) solana.PublicKey {
	t.Helper()
	privKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	return privKey.PublicKey()
}

func randomPrivateKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	privKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	return privKey
}

func ptrTo[T any](value T) *T { return &value }
