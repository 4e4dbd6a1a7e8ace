// Package cli implements the octav-mcp command line.
package cli

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExitError carries a process exit code without an extra error message.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "octav-mcp",
		Short: "Octav portfolio API tools for MCP hosts",
		Long:  "octav-mcp exposes the Octav portfolio API as Model Context Protocol tools over stdio or HTTP.",
		// errors are printed once by main
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "Path to a YAML config file (default: $OCTAV_CONFIG)")

	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("octav-mcp version %s\n", version))

	root.AddCommand(NewServeCmd(version))
	root.AddCommand(NewToolsCmd())
	root.AddCommand(NewCallCmd(version))
	return root
}
