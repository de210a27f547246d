package config

import (
	"fmt"
	"strings"

	"book-pricer/feed"
	"book-pricer/logger"
	"book-pricer/orderbook"

	"github.com/pkg/errors"
)

// Config is the pricer's runtime configuration.
type Config struct {
	// TargetSize is the number of shares priced in each direction.
	TargetSize int64 `toml:"target_size" env:"TARGET_SIZE"`

	// Store names the price-level strategy: rbtree, array, bst, btree or list.
	Store string `toml:"store" env:"STORE"`

	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`

	// LogEncoding is "json" or "console".
	LogEncoding string `toml:"log_encoding" env:"LOG_ENCODING"`

	// LogOutput lists log sinks; "stdout" would mix logs into the price stream.
	LogOutput []string `toml:"log_output" env:"LOG_OUTPUT" envSeparator:","`

	// DebugSnapshot logs the whole book after every event at debug level.
	DebugSnapshot bool `toml:"debug_snapshot" env:"DEBUG_SNAPSHOT"`

	Generator GeneratorConfig `toml:"generator" envPrefix:"GENERATOR_"`
}

// GeneratorConfig drives the synthetic feed used by the benchmark and profile tools.
type GeneratorConfig struct {
	Seed        int64   `toml:"seed" env:"SEED"`
	Events      int     `toml:"events" env:"EVENTS"`
	MidPrice    int64   `toml:"mid_price" env:"MID_PRICE"` // cents
	HalfSpread  int64   `toml:"half_spread" env:"HALF_SPREAD"`
	MaxSize     int64   `toml:"max_size" env:"MAX_SIZE"`
	ReduceRatio float64 `toml:"reduce_ratio" env:"REDUCE_RATIO"`
}

// Options converts the section into generator options
func (g GeneratorConfig) Options() feed.GeneratorOptions {
	return feed.GeneratorOptions{
		Seed:        g.Seed,
		MidPrice:    g.MidPrice,
		HalfSpread:  g.HalfSpread,
		MaxSize:     g.MaxSize,
		ReduceRatio: g.ReduceRatio,
	}
}

// Defaults returns a Config populated with the values used when nothing is configured.
func Defaults() Config {
	return Config{
		TargetSize:    200,
		Store:         orderbook.MapStore.String(),
		LogLevel:      string(logger.InfoLevel),
		LogEncoding:   "json",
		LogOutput:     []string{"stderr"},
		DebugSnapshot: false,
		Generator: GeneratorConfig{
			Seed:        1,
			Events:      1_000_000,
			MidPrice:    4420,
			HalfSpread:  200,
			MaxSize:     300,
			ReduceRatio: 0.45,
		},
	}
}

// StoreType resolves Store; call Validate first.
func (c *Config) StoreType() orderbook.StoreType {
	store, _ := orderbook.ParseStoreType(c.Store)
	return store
}

// Level resolves LogLevel; call Validate first.
func (c *Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

// LoggerOptions turns the log_* keys into logger options; call Validate first.
func (c *Config) LoggerOptions() []logger.Options {
	return []logger.Options{
		logger.WithLoggingLevel(c.Level()),
		logger.WithEncoding(c.LogEncoding),
		logger.WithOutputPaths(c.LogOutput),
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []string

	if c.TargetSize <= 0 {
		errs = append(errs, fmt.Sprintf("target_size must be > 0, got %d", c.TargetSize))
	}
	if _, err := orderbook.ParseStoreType(c.Store); err != nil {
		errs = append(errs, "store: "+err.Error())
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, "log_level: "+err.Error())
	}
	if c.LogEncoding != "json" && c.LogEncoding != "console" {
		errs = append(errs, fmt.Sprintf("log_encoding must be json or console, got %q", c.LogEncoding))
	}
	if len(c.LogOutput) == 0 {
		errs = append(errs, "log_output must name at least one sink")
	}

	g := c.Generator
	if g.Events < 0 {
		errs = append(errs, fmt.Sprintf("generator: events must be >= 0, got %d", g.Events))
	}
	if g.HalfSpread <= 0 || g.MidPrice-g.HalfSpread <= 0 {
		errs = append(errs, fmt.Sprintf("generator: price range %d±%d must stay positive", g.MidPrice, g.HalfSpread))
	}
	if g.MaxSize <= 0 {
		errs = append(errs, fmt.Sprintf("generator: max_size must be > 0, got %d", g.MaxSize))
	}
	if g.ReduceRatio < 0 || g.ReduceRatio >= 1 {
		errs = append(errs, fmt.Sprintf("generator: reduce_ratio must be in [0, 1), got %g", g.ReduceRatio))
	}

	if len(errs) > 0 {
		return errors.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
