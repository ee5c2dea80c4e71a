package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys shared by flags, environment variables and config files.
const (
	KeyIterations  = "iterations"
	KeyOutput      = "output"
	KeyLogLevel    = "log_level"
	KeyCooldown    = "cooldown"
	KeyMetricsFile = "metrics_file"
	KeyNoColor     = "no_color"

	// EnvPrefix prefixes every environment override, e.g. BENCHKIT_ITERATIONS.
	EnvPrefix = "BENCHKIT"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of a benchkit invocation
type Config struct {
	Iterations  uint64        `mapstructure:"iterations" yaml:"iterations"`
	Output      string        `mapstructure:"output" yaml:"output"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	Cooldown    time.Duration `mapstructure:"cooldown" yaml:"cooldown"`
	MetricsFile string        `mapstructure:"metrics_file" yaml:"metrics_file"`
	NoColor     bool          `mapstructure:"no_color" yaml:"no_color"`
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Iterations: 10_000,
		Output:     "table",
		LogLevel:   "info",
	}
}

// NewViper returns a viper instance with defaults and environment binding
// set up. Flags are bound by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault(KeyIterations, def.Iterations)
	v.SetDefault(KeyOutput, def.Output)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyCooldown, def.Cooldown)
	v.SetDefault(KeyMetricsFile, def.MetricsFile)
	v.SetDefault(KeyNoColor, def.NoColor)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads an optional config file and decodes the merged settings.
func LoadConfig(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for values the harness cannot work with.
func (c Config) Validate() error {
	if c.Iterations == 0 {
		return fmt.Errorf("%w: iterations must be greater than zero", ErrInvalidConfig)
	}
	if !isSupportedFormat(c.Output) {
		return fmt.Errorf("%w: unsupported output format: %s", ErrInvalidConfig, c.Output)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("%w: cooldown must not be negative", ErrInvalidConfig)
	}
	return nil
}

// NewLogger builds the structured logger for the given level.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func parseLevel(level string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
	return lvl, nil
}
