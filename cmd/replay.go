package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhanukaranwal/Quantum-Arb/internal/config"
	"github.com/bhanukaranwal/Quantum-Arb/internal/mempool"
	"github.com/bhanukaranwal/Quantum-Arb/internal/ring"
)

var replayFile string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Drive the capture engine from a recorded pcap file",
	Long: `Replay a recorded capture through the same burst-polling engine used
for live traffic. The run ends when the file is exhausted.

Examples:
  qarb-feed replay -f session.pcap
  qarb-feed replay -f session.pcap -c feed.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayFile == "" {
			return fmt.Errorf("a capture file is required (-f)")
		}
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		return runCapture(cfg, func(pool *mempool.Pool) (ring.Ring, error) {
			return ring.OpenFile(replayFile, pool)
		}, "replay:"+replayFile)
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayFile, "file", "f", "", "pcap file to replay")
	rootCmd.AddCommand(replayCmd)
}
