package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gossipsim",
	Short: "Discrete-event simulator for a gossip-based cluster topology",
	Long: `gossipsim drives a deterministic virtual-time simulation of a
self-organizing gossip cluster: nodes join and leave, heartbeat and
gossip their knowledge of the rest of the cluster, and periodically
re-optimize their own connection set toward a target fan-out.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
