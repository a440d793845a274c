package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

const (
	defaultBatchSize    = 100
	defaultBatchTimeout = 100 * time.Millisecond
	defaultCompression  = "snappy"
	defaultMaxAttempts  = 3
)

// KafkaConfig configures the Kafka tick sink.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	Compression  string // none|gzip|snappy|lz4
	MaxAttempts  int
}

// Kafka publishes ticks as JSON records, keyed by instrument so one
// instrument's outputs stay in order on a single partition.
type Kafka struct {
	writer *kafka.Writer

	sent   atomic.Uint64
	errors atomic.Uint64
}

// NewKafka creates a Kafka tick sink.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("%w: kafka sink requires brokers", core.ErrConfigInvalid)
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("%w: kafka sink requires a topic", core.ErrConfigInvalid)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = defaultBatchTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Compression == "" {
		cfg.Compression = defaultCompression
	}

	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		MaxAttempts:  cfg.MaxAttempts,
		Async:        false,
	}

	switch cfg.Compression {
	case "none":
		writerConfig.CompressionCodec = nil
	case "gzip":
		writerConfig.CompressionCodec = compress.Gzip.Codec()
	case "snappy":
		writerConfig.CompressionCodec = compress.Snappy.Codec()
	case "lz4":
		writerConfig.CompressionCodec = compress.Lz4.Codec()
	default:
		return nil, fmt.Errorf("%w: invalid kafka compression %q", core.ErrConfigInvalid, cfg.Compression)
	}

	return &Kafka{writer: kafka.NewWriter(writerConfig)}, nil
}

// OnTick serialises and publishes one tick.
func (k *Kafka) OnTick(ctx context.Context, t core.Tick) error {
	value, err := json.Marshal(t)
	if err != nil {
		k.errors.Add(1)
		return fmt.Errorf("serialize tick: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(t.Instrument),
		Value: value,
		Time:  time.Now(),
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		k.errors.Add(1)
		return fmt.Errorf("kafka write: %w", err)
	}
	k.sent.Add(1)
	return nil
}

// Close flushes pending batches and closes the writer.
func (k *Kafka) Close() error {
	err := k.writer.Close()
	slog.Info("kafka sink closed",
		"total_sent", k.sent.Load(),
		"total_errors", k.errors.Load(),
	)
	return err
}
