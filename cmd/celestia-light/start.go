package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/celestia-light/node"
)

const metricsFlag = "metrics"

func init() {
	startCmd.Flags().Bool(metricsFlag, false, "Enable OTel metrics collection")
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the light node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString(storeFlag)
		if err != nil {
			return err
		}

		store, err := node.OpenStore(path)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck

		nd, err := node.New(store)
		if err != nil {
			return err
		}

		if enabled, err := cmd.Flags().GetBool(metricsFlag); err == nil && enabled {
			if err := nd.WithMetrics(); err != nil {
				return err
			}
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := nd.Start(ctx); err != nil {
			return err
		}

		// block until the process is told to shut down
		<-ctx.Done()
		cancel()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Minute)
		defer stopCancel()
		return nd.Stop(stopCtx)
	},
}
