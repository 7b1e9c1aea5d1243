package config

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/smartcontractkit/themis/sdk"
	"github.com/smartcontractkit/themis/types"
)

// Session is the RPC connection and signer of one invocation.
type Session struct {
	Config  *RuntimeConfig
	Client  *rpc.Client
	Signer  solana.PrivateKey
	Cluster types.Cluster
}

// NewSession loads the keypair, connects to the configured endpoint and identifies the cluster
// from its genesis hash. An unknown cluster is logged, not rejected, so that local validators
// work.
func NewSession(ctx context.Context, cfg *RuntimeConfig) (*Session, error) {
	signer, err := LoadKeypair(cfg.KeypairPath)
	if err != nil {
		return nil, err
	}

	return newSession(ctx, cfg, rpc.New(cfg.RPCURL), signer), nil
}

func newSession(ctx context.Context, cfg *RuntimeConfig, client *rpc.Client, signer solana.PrivateKey) *Session {
	lggr := sdk.LoggerFrom(ctx)
	session := &Session{Config: cfg, Client: client, Signer: signer}

	genesis, err := client.GetGenesisHash(ctx)
	if err != nil {
		lggr.Warnf("unable to get genesis hash from %s: %v", cfg.RPCURL, err)

		return session
	}

	cluster, err := types.ClusterFromGenesisHash(genesis.String())
	if err != nil {
		lggr.Warnf("connected to an unknown cluster at %s (genesis %s)", cfg.RPCURL, genesis)

		return session
	}
	session.Cluster = cluster
	lggr.Infof("connected to %s (selector %d) as %s", cluster.Name, cluster.Selector, signer.PublicKey())

	return session
}
