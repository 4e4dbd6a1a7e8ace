package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"octav_mcp/internal/app/tools"
	"octav_mcp/internal/infrastructure/walletloader"
	"octav_mcp/internal/pkg/logger"
)

// NewCallCmd creates the "call" subcommand.
func NewCallCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run one tool and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawArgs, _ := cmd.Flags().GetString("args")
			addressesFile, _ := cmd.Flags().GetString("addresses-file")

			a, err := newApp(cmd, version)
			if err != nil {
				return err
			}
			defer a.Close()

			var res tools.Result
			toolArgs, err := tools.ParseArguments([]byte(rawArgs))
			if err == nil && addressesFile != "" {
				err = addAddressesFromFile(toolArgs, addressesFile)
			}
			if err != nil {
				res = tools.ErrorResult(err)
			} else {
				res = a.registry.Call(cmd.Context(), args[0], toolArgs, a.api)
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Text())
			if res.IsError {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().String("args", "{}", "Tool arguments as a JSON object")
	cmd.Flags().String("addresses-file", "", "File with one wallet address per line, used when --args has no addresses")
	return cmd
}

func addAddressesFromFile(toolArgs map[string]any, path string) error {
	if _, ok := toolArgs["addresses"]; ok {
		return nil
	}
	addresses, err := walletloader.NewAddressFileLoader(path, logger.NewSlogAdapter("component", "walletloader")).LoadAddresses()
	if err != nil {
		return err
	}
	list := make([]any, 0, len(addresses))
	for _, address := range addresses {
		list = append(list, address)
	}
	toolArgs["addresses"] = list
	return nil
}
