package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"octav_mcp/internal/app/tools"
)

// NewToolsCmd creates the "tools" subcommand. It needs no API key.
func NewToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print every tool descriptor as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := tools.NewRegistry(nil, nil, nil)
			out, err := json.MarshalIndent(registry.List(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode tool descriptors: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
