package main

import (
	"context"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(
		initCmd,
		startCmd,
	)
	rootCmd.PersistentFlags().StringP(
		storeFlag,
		"s",
		"~/.celestia-light",
		"The root/home directory of the node",
	)
	rootCmd.PersistentFlags().String(
		networkFlag,
		"",
		"The name of the network to join (e.g. mocha, arabica, private)",
	)
	rootCmd.PersistentFlags().String(
		logLevelFlag,
		"info",
		"Log level for all subsystems (debug, info, warn, error)",
	)
	rootCmd.SetHelpCommand(&cobra.Command{})
}

const (
	storeFlag    = "node.store"
	networkFlag  = "p2p.network"
	logLevelFlag = "log.level"
)

var rootCmd = &cobra.Command{
	Use:  "celestia-light [subcommand]",
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := cmd.Flags().GetString(logLevelFlag)
		if err != nil {
			return err
		}
		return logging.SetLogLevel("*", level)
	},
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
