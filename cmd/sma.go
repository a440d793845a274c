package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bhanukaranwal/Quantum-Arb/internal/config"
	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
	"github.com/bhanukaranwal/Quantum-Arb/internal/indicator"
	"github.com/bhanukaranwal/Quantum-Arb/internal/log"
	"github.com/bhanukaranwal/Quantum-Arb/internal/metrics"
	"github.com/bhanukaranwal/Quantum-Arb/internal/sink"
)

var (
	smaFile       string
	smaInstrument string
)

var smaCmd = &cobra.Command{
	Use:   "sma",
	Short: "Stream price samples through the indicator engine",
	Long: `Feed integer price samples through the fixed-window SMA engine and
publish one tick per sample to the configured sink.

Input is one sample per line, either "price" or "instrument,price"; prices
are unsigned integers in the venue's minimum tick units. Use "-" to read
from stdin.

Examples:
  qarb-feed sma -f prices.csv
  gunzip -c ticks.csv.gz | qarb-feed sma -f - --instrument BTC-USD`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if err := log.Init(cfg.Log); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		in := os.Stdin
		if smaFile != "" && smaFile != "-" {
			f, err := os.Open(smaFile)
			if err != nil {
				return fmt.Errorf("failed to open price file: %w", err)
			}
			defer f.Close()
			in = f
		}

		tickSink, err := buildTickSink(cfg)
		if err != nil {
			return err
		}
		defer tickSink.Close()

		return runIndicator(cmd.Context(), cfg, in, tickSink)
	},
}

func init() {
	smaCmd.Flags().StringVarP(&smaFile, "file", "f", "-", "price sample file, or - for stdin")
	smaCmd.Flags().StringVar(&smaInstrument, "instrument", "default", "instrument for unprefixed samples")
	rootCmd.AddCommand(smaCmd)
}

func buildTickSink(cfg *config.Config) (sink.TickSink, error) {
	switch cfg.Sink.Type {
	case "kafka":
		return sink.NewKafka(sink.KafkaConfig{
			Brokers:      cfg.Sink.Kafka.Brokers,
			Topic:        cfg.Sink.Kafka.Topic,
			BatchSize:    cfg.Sink.Kafka.BatchSize,
			BatchTimeout: cfg.Sink.Kafka.BatchTimeout,
			Compression:  cfg.Sink.Kafka.Compression,
			MaxAttempts:  cfg.Sink.Kafka.MaxAttempts,
		})
	default:
		return sink.NewConsole(), nil
	}
}

// runIndicator applies samples in arrival order, one window per instrument.
// A malformed line is reported and skipped; it does not stop the stream.
func runIndicator(ctx context.Context, cfg *config.Config, in io.Reader, out sink.TickSink) error {
	book, err := indicator.NewBook(cfg.Indicator.WindowSize, cfg.Indicator.EmitPreWarm)
	if err != nil {
		return err
	}

	var seq uint64
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		instrument := smaInstrument
		sample := line
		if i := strings.IndexByte(line, ','); i >= 0 {
			instrument = line[:i]
			sample = line[i+1:]
		}

		price, err := strconv.ParseUint(sample, 10, 64)
		if err != nil {
			slog.Warn("skipping malformed price sample", "line", line, "error", err)
			continue
		}

		res := book.Update(instrument, price)
		seq++
		if !res.Emit {
			continue
		}

		metrics.TicksTotal.WithLabelValues(instrument).Inc()
		tick := core.Tick{
			Instrument: instrument,
			Seq:        seq,
			Price:      price,
			SMA:        res.Value,
			Warm:       res.Warm,
		}
		if err := out.OnTick(ctx, tick); err != nil {
			slog.Warn("tick delivery failed", "instrument", instrument, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed reading price stream: %w", err)
	}

	slog.Info("price stream ended", "samples", seq, "instruments", book.Len())
	return nil
}
