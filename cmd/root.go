// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qarb-feed",
	Short: "QuantumArb feed agent - market data capture and streaming indicators",
	Long: `qarb-feed is the QuantumArb market-data feed agent.

It drains raw frames from a NIC receive ring using pre-allocated packet
buffers, hands the link-layer fields to the strategy boundary, and computes
fixed-window streaming indicators (SMA) over integer price streams with O(1)
per-sample cost.

Commands:
  run     capture frames from a live AF_PACKET ring
  replay  drive the capture engine from a recorded pcap file
  sma     stream price samples through the indicator engine`,
	Version: "2.0.0",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "/etc/qarb/feed.yml",
		"config file path")
}
