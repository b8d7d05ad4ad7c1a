package main

import (
	"github.com/spf13/cobra"

	"github.com/celestiaorg/celestia-light/build"
	"github.com/celestiaorg/celestia-light/node"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the node store with a default config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString(storeFlag)
		if err != nil {
			return err
		}

		network := build.DefaultNetwork
		if name, err := cmd.Flags().GetString(networkFlag); err == nil && name != "" {
			network, err = build.Network(name).Validate()
			if err != nil {
				return err
			}
		}

		return node.Init(path, node.DefaultConfig(network))
	},
}
