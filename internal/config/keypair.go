package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
)

// DefaultKeypairPath is the solana CLI's default keypair location.
func DefaultKeypairPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".config", "solana", "id.json")
	}

	return filepath.Join(home, ".config", "solana", "id.json")
}

// LoadKeypair reads a solana-keygen JSON keypair file. A leading ~ is expanded.
func LoadKeypair(path string) (solana.PrivateKey, error) {
	if path == "" {
		return nil, sdkerrors.NewConfigurationError(KeyKeypair, "is required")
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to expand %s: %w", path, err)
		}
		path = filepath.Join(home, rest)
	}

	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, sdkerrors.NewConfigurationError(KeyKeypair, fmt.Sprintf("unable to read keypair %s: %v", path, err))
	}

	return key, nil
}
