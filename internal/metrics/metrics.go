// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesTotal counts frames drained from the receive ring.
	FramesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qarb_feed_frames_total",
			Help: "Total number of frames drained from the receive ring",
		},
		[]string{"ring"},
	)

	// FrameBytesTotal counts frame bytes drained from the receive ring.
	FrameBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qarb_feed_frame_bytes_total",
			Help: "Total frame bytes drained from the receive ring",
		},
		[]string{"ring"},
	)

	// FrameErrorsTotal counts non-fatal per-frame failures by stage.
	FrameErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qarb_feed_frame_errors_total",
			Help: "Total non-fatal per-frame failures",
		},
		[]string{"ring", "stage"}, // stage: decode | sink
	)

	// PoolFree tracks free buffers in the packet buffer pool.
	PoolFree = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qarb_feed_pool_free_buffers",
			Help: "Number of free buffers in the packet buffer pool",
		},
	)

	// BurstSize tracks the distribution of poll burst sizes.
	BurstSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qarb_feed_burst_size",
			Help:    "Number of frames drained per ring poll",
			Buckets: prometheus.ExponentialBuckets(1, 2, 7), // 1..64
		},
	)

	// TicksTotal counts indicator outputs by instrument.
	TicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qarb_feed_ticks_total",
			Help: "Total indicator outputs produced",
		},
		[]string{"instrument"},
	)
)
