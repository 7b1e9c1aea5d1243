package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainSelector is a unique identifier for a chain.
//
// These values are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainSelector uint64

// ErrClusterNotFound is returned when a genesis hash is not a known Solana cluster.
var ErrClusterNotFound = errors.New("cluster not found")

// Cluster identifies the Solana cluster an RPC endpoint serves.
type Cluster struct {
	Selector    ChainSelector
	Name        string
	GenesisHash string
}

// ClusterFromGenesisHash resolves a Solana genesis hash to its chain selector and name.
func ClusterFromGenesisHash(genesisHash string) (Cluster, error) {
	details, err := chainsel.GetChainDetailsByChainIDAndFamily(genesisHash, chainsel.FamilySolana)
	if err != nil {
		return Cluster{}, fmt.Errorf("%w for genesis hash %s: %w", ErrClusterNotFound, genesisHash, err)
	}

	return Cluster{
		Selector:    ChainSelector(details.ChainSelector),
		Name:        details.ChainName,
		GenesisHash: genesisHash,
	}, nil
}
