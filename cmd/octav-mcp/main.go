package main

import (
	"errors"
	"fmt"
	"os"

	"octav_mcp/internal/cli"
)

// Set via ldflags at build time.
var version = "1.0.0"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
