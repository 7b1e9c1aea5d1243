package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"github.com/gagliardetto/solana-go"
)

// UpgradeableBuffer summarizes a loader buffer account found by a scan.
type UpgradeableBuffer struct {
	Address   solana.PublicKey `json:"address" yaml:"address"`
	Authority solana.PublicKey `json:"authority" yaml:"authority"`
	// DataLen is the length of the data the query returned. Scans request only the 37 byte header,
	// so it is not the size of the uploaded program.
	DataLen  int    `json:"dataLen" yaml:"dataLen"`
	Lamports uint64 `json:"lamports" yaml:"lamports"`
}
