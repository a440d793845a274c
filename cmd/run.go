package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bhanukaranwal/Quantum-Arb/internal/capture"
	"github.com/bhanukaranwal/Quantum-Arb/internal/config"
	"github.com/bhanukaranwal/Quantum-Arb/internal/log"
	"github.com/bhanukaranwal/Quantum-Arb/internal/mempool"
	"github.com/bhanukaranwal/Quantum-Arb/internal/metrics"
	"github.com/bhanukaranwal/Quantum-Arb/internal/ring"
	"github.com/bhanukaranwal/Quantum-Arb/internal/sink"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Capture frames from a live receive ring",
	Long: `Run the capture engine against a live AF_PACKET receive ring.

The engine busy-polls the ring in fixed-size bursts and hands each frame's
link-layer fields to the strategy boundary. SIGINT/SIGTERM stop the loop,
close the device, and exit cleanly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cfg.Capture.Device == "" {
			return fmt.Errorf("capture.device is required for live capture")
		}
		return runCapture(cfg, func(pool *mempool.Pool) (ring.Ring, error) {
			return ring.OpenAFPacket(ring.AFPacketConfig{
				Device:       cfg.Capture.Device,
				SnapLen:      cfg.Capture.SnapLen,
				BufferSizeMB: cfg.Capture.BufferSizeMB,
				TimeoutMs:    cfg.Capture.TimeoutMs,
				FanoutID:     cfg.Capture.FanoutID,
				BPFFilter:    cfg.Capture.BPFFilter,
			}, pool)
		}, cfg.Capture.Device)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runCapture wires pool, ring, sink, and engine, then blocks until shutdown.
// Every step before the poll loop is an initialisation failure when it
// errors: the returned error reaches main, which exits non-zero.
func runCapture(cfg *config.Config, openRing func(*mempool.Pool) (ring.Ring, error), ringName string) error {
	if err := log.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Listen, cfg.Metrics.Path)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
	}

	pool, err := mempool.New(cfg.Capture.PoolBuffers, cfg.Capture.SnapLen)
	if err != nil {
		return fmt.Errorf("failed to create buffer pool: %w", err)
	}

	r, err := openRing(pool)
	if err != nil {
		return fmt.Errorf("failed to open receive ring: %w", err)
	}

	engine, err := capture.New(ringName, r, pool, sink.NewConsole(), cfg.Capture.BurstSize)
	if err != nil {
		r.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := engine.Run(ctx)

	if metricsServer != nil {
		if err := metricsServer.Stop(context.Background()); err != nil {
			slog.Warn("metrics server stop failed", "error", err)
		}
	}

	stats := engine.Stats()
	slog.Info("capture finished",
		"ring", ringName,
		"frames", stats.Frames.Load(),
		"bytes", stats.Bytes.Load(),
		"decode_errors", stats.DecodeErrors.Load(),
		"sink_errors", stats.SinkErrors.Load(),
	)
	return runErr
}
