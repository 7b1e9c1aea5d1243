package config

import (
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
)

// Cluster monikers accepted by --url.
const (
	ClusterDevnet      = "devnet"
	ClusterTestnet     = "testnet"
	ClusterMainnetBeta = "mainnet-beta"
	ClusterLocalnet    = "localnet"
)

var clusterEndpoints = map[string]string{
	ClusterDevnet:      rpc.DevNet_RPC,
	"d":                rpc.DevNet_RPC,
	ClusterTestnet:     rpc.TestNet_RPC,
	"t":                rpc.TestNet_RPC,
	ClusterMainnetBeta: rpc.MainNetBeta_RPC,
	"mainnet":          rpc.MainNetBeta_RPC,
	"m":                rpc.MainNetBeta_RPC,
	ClusterLocalnet:    rpc.LocalNet_RPC,
	"localhost":        rpc.LocalNet_RPC,
	"l":                rpc.LocalNet_RPC,
}

// ResolveRPCURL maps a cluster moniker to its public endpoint. Anything else must be an http(s)
// URL and is returned unchanged.
func ResolveRPCURL(value string) (string, error) {
	value = strings.TrimSpace(value)
	if endpoint, ok := clusterEndpoints[strings.ToLower(value)]; ok {
		return endpoint, nil
	}

	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", sdkerrors.NewConfigurationError(KeyURL,
			"want a cluster moniker (devnet, testnet, mainnet-beta, localnet) or an http(s) url, got "+value)
	}

	return value, nil
}
