package sink

import (
	"context"
	"log/slog"
	"net"

	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

// Console logs every frame and tick through the structured logger. Intended
// for bring-up and replay inspection, not for production rates.
type Console struct{}

// NewConsole creates a console sink.
func NewConsole() *Console { return &Console{} }

func (c *Console) OnFrame(f core.Frame) error {
	slog.Info("frame",
		"src_mac", net.HardwareAddr(f.SrcMAC[:]).String(),
		"dst_mac", net.HardwareAddr(f.DstMAC[:]).String(),
		"length", f.Length,
	)
	return nil
}

func (c *Console) OnTick(_ context.Context, t core.Tick) error {
	slog.Info("tick",
		"instrument", t.Instrument,
		"seq", t.Seq,
		"price", t.Price,
		"sma", t.SMA,
		"warm", t.Warm,
	)
	return nil
}

func (c *Console) Close() error { return nil }
