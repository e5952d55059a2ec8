// Package config handles configuration loading for bunkerwatch.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"  yaml:"source"`
	Fetch   FetchConfig   `mapstructure:"fetch"   yaml:"fetch"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	News    NewsConfig    `mapstructure:"news"    yaml:"news"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SourceConfig describes the prices page and the structural anchors the
// extractors look for. The block ids come from the page markup and are not
// contractually guaranteed; a missing block degrades that category to empty.
type SourceConfig struct {
	BaseURL       string   `mapstructure:"base_url"       yaml:"base_url"`
	FuelTypes     []string `mapstructure:"fuel_types"     yaml:"fuel_types"`
	MethanolBlock string   `mapstructure:"methanol_block" yaml:"methanol_block"`
	EUABlock      string   `mapstructure:"eua_block"      yaml:"eua_block"`
}

// FetchConfig holds HTTP fetch and retry settings.
type FetchConfig struct {
	TimeoutSec    int `mapstructure:"timeout_sec"     yaml:"timeout_sec"`
	MaxAttempts   int `mapstructure:"max_attempts"    yaml:"max_attempts"`
	RetryDelaySec int `mapstructure:"retry_delay_sec" yaml:"retry_delay_sec"`
	RatePerSec    int `mapstructure:"rate_per_sec"    yaml:"rate_per_sec"`
}

// Timeout returns the per-request timeout as a duration.
func (f FetchConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// RetryDelay returns the fixed inter-attempt delay as a duration.
func (f FetchConfig) RetryDelay() time.Duration {
	return time.Duration(f.RetryDelaySec) * time.Second
}

// OutputConfig holds the append-only CSV sink destinations.
type OutputConfig struct {
	Dir          string `mapstructure:"dir"           yaml:"dir"`
	FuelFile     string `mapstructure:"fuel_file"     yaml:"fuel_file"`
	MethanolFile string `mapstructure:"methanol_file" yaml:"methanol_file"`
	EUAFile      string `mapstructure:"eua_file"      yaml:"eua_file"`
}

// FuelPath returns the full path of the fuel-price sink file.
func (o OutputConfig) FuelPath() string { return filepath.Join(o.Dir, o.FuelFile) }

// MethanolPath returns the full path of the methanol sink file.
func (o OutputConfig) MethanolPath() string { return filepath.Join(o.Dir, o.MethanolFile) }

// EUAPath returns the full path of the compliance-cost sink file.
func (o OutputConfig) EUAPath() string { return filepath.Join(o.Dir, o.EUAFile) }

// NewsConfig holds the bunker news feed settings.
type NewsConfig struct {
	FeedURL string `mapstructure:"feed_url" yaml:"feed_url"`
	Limit   int    `mapstructure:"limit"    yaml:"limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.bunkerwatch/config.yaml (home directory)
//  3. /etc/bunkerwatch/config.yaml (system)
//
// Environment variables override config file values.
// Format: BUNKERWATCH_<SECTION>_<KEY>, e.g., BUNKERWATCH_OUTPUT_DIR
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".bunkerwatch"))
	v.AddConfigPath("/etc/bunkerwatch")

	v.SetEnvPrefix("BUNKERWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BUNKERWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Source defaults
	v.SetDefault("source.base_url", "https://shipandbunker.com/prices")
	v.SetDefault("source.fuel_types", []string{"VLSFO", "MGO", "IFO380"})
	v.SetDefault("source.methanol_block", "block_1053")
	v.SetDefault("source.eua_block", "block_1070")

	// Fetch defaults
	v.SetDefault("fetch.timeout_sec", 30)
	v.SetDefault("fetch.max_attempts", 3)
	v.SetDefault("fetch.retry_delay_sec", 5)
	v.SetDefault("fetch.rate_per_sec", 1)

	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.fuel_file", "master_fuel_prices.csv")
	v.SetDefault("output.methanol_file", "master_methanol_prices.csv")
	v.SetDefault("output.eua_file", "master_eua_prices.csv")

	// News defaults
	v.SetDefault("news.feed_url", "https://shipandbunker.com/news/feed")
	v.SetDefault("news.limit", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
