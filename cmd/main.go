package main

import (
	"context"
	"fmt"
	"os"

	"github.com/smartcontractkit/themis/cmd/themis"
)

func main() {
	rootCmd := themis.BuildThemisCmd()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
