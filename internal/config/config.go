// Package config handles configuration loading using viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bhanukaranwal/Quantum-Arb/internal/core"
)

// Config is the top-level feed-agent configuration.
// Maps to the `feed-agent:` root key in YAML.
type Config struct {
	Capture   CaptureConfig   `mapstructure:"capture"`
	Indicator IndicatorConfig `mapstructure:"indicator"`
	Sink      SinkConfig      `mapstructure:"sink"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

// CaptureConfig configures the receive ring, buffer pool, and burst loop.
// Pool sizing is a deployment parameter: pool_buffers * snap_len bytes are
// allocated contiguously up front.
type CaptureConfig struct {
	Device       string `mapstructure:"device"`
	SnapLen      int    `mapstructure:"snap_len"`
	BufferSizeMB int    `mapstructure:"buffer_size_mb"`
	TimeoutMs    int    `mapstructure:"timeout_ms"`
	FanoutID     uint16 `mapstructure:"fanout_id"`
	BPFFilter    string `mapstructure:"bpf_filter"`
	BurstSize    int    `mapstructure:"burst_size"`
	PoolBuffers  int    `mapstructure:"pool_buffers"`
}

// IndicatorConfig configures the streaming indicator engine.
// emit_pre_warm keeps the upstream behaviour of averaging over
// zero-initialised slots before the window has filled; setting it false
// suppresses outputs until the window is warm.
type IndicatorConfig struct {
	WindowSize  int  `mapstructure:"window_size"`
	EmitPreWarm bool `mapstructure:"emit_pre_warm"`
}

// SinkConfig selects where outputs are delivered.
type SinkConfig struct {
	Type  string          `mapstructure:"type"` // console | kafka
	Kafka KafkaSinkConfig `mapstructure:"kafka"`
}

// KafkaSinkConfig configures the Kafka sink.
type KafkaSinkConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	Compression  string        `mapstructure:"compression"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	Path    string `mapstructure:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string           `mapstructure:"level"`  // debug|info|warn|error
	Format string           `mapstructure:"format"` // json|text
	File   FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures rotated file output.
type FileOutputConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type configRoot struct {
	FeedAgent Config `mapstructure:"feed-agent"`
}

// Load loads configuration from file. The YAML file uses `feed-agent:` as
// root key; env vars override via the key replacer (e.g. the key
// "feed-agent.log.level" maps to env "FEED_AGENT_LOG_LEVEL").
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.FeedAgent

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values. All keys use the "feed-agent." prefix to
// match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	// Capture defaults: 32-frame bursts from a ring of 8192 pre-allocated
	// buffers, as deployed on the reference capture hosts.
	v.SetDefault("feed-agent.capture.snap_len", 2048)
	v.SetDefault("feed-agent.capture.buffer_size_mb", 64)
	v.SetDefault("feed-agent.capture.timeout_ms", 10)
	v.SetDefault("feed-agent.capture.burst_size", 32)
	v.SetDefault("feed-agent.capture.pool_buffers", 8192)

	// Indicator defaults
	v.SetDefault("feed-agent.indicator.window_size", 10)
	v.SetDefault("feed-agent.indicator.emit_pre_warm", true)

	// Sink defaults
	v.SetDefault("feed-agent.sink.type", "console")
	v.SetDefault("feed-agent.sink.kafka.batch_size", 100)
	v.SetDefault("feed-agent.sink.kafka.batch_timeout", "100ms")
	v.SetDefault("feed-agent.sink.kafka.compression", "snappy")
	v.SetDefault("feed-agent.sink.kafka.max_attempts", 3)

	// Metrics defaults
	v.SetDefault("feed-agent.metrics.enabled", true)
	v.SetDefault("feed-agent.metrics.listen", ":9091")
	v.SetDefault("feed-agent.metrics.path", "/metrics")

	// Log defaults
	v.SetDefault("feed-agent.log.level", "info")
	v.SetDefault("feed-agent.log.format", "json")
	v.SetDefault("feed-agent.log.file.enabled", false)
	v.SetDefault("feed-agent.log.file.path", "/var/log/qarb/feed.log")
	v.SetDefault("feed-agent.log.file.max_size_mb", 100)
	v.SetDefault("feed-agent.log.file.max_backups", 5)
	v.SetDefault("feed-agent.log.file.max_age_days", 30)
	v.SetDefault("feed-agent.log.file.compress", true)
}

// Validate rejects configurations the engines cannot run with.
func (c *Config) Validate() error {
	if c.Capture.SnapLen <= 0 {
		return fmt.Errorf("%w: capture.snap_len must be positive, got %d", core.ErrConfigInvalid, c.Capture.SnapLen)
	}
	if c.Capture.BurstSize <= 0 {
		return fmt.Errorf("%w: capture.burst_size must be positive, got %d", core.ErrConfigInvalid, c.Capture.BurstSize)
	}
	if c.Capture.PoolBuffers < c.Capture.BurstSize {
		return fmt.Errorf("%w: capture.pool_buffers (%d) must be at least capture.burst_size (%d)",
			core.ErrConfigInvalid, c.Capture.PoolBuffers, c.Capture.BurstSize)
	}
	if c.Indicator.WindowSize <= 0 {
		return fmt.Errorf("%w: indicator.window_size must be positive, got %d", core.ErrConfigInvalid, c.Indicator.WindowSize)
	}
	switch c.Sink.Type {
	case "console":
	case "kafka":
		if len(c.Sink.Kafka.Brokers) == 0 || c.Sink.Kafka.Topic == "" {
			return fmt.Errorf("%w: kafka sink requires brokers and topic", core.ErrConfigInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown sink type %q", core.ErrConfigInvalid, c.Sink.Type)
	}
	return nil
}
