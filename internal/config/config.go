// Package config resolves reconciler settings from flags, RECONCILER_*
// environment variables, .env files and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding"

	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/logging"
	"name-reconciliation/internal/parser"
	"name-reconciliation/internal/textenc"
)

// EnvPrefix prefixes every environment variable read by the reconciler.
const EnvPrefix = "RECONCILER"

// Reference store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	ConfigFile string `mapstructure:"-"`

	// Mode is empty when the command's own default applies.
	Mode            string `mapstructure:"mode"`
	IncludeAmounts  bool   `mapstructure:"include_amounts"`
	OutputFormat    string `mapstructure:"output_format"`
	OutputEncoding  string `mapstructure:"output_encoding"`
	ShowSecondaryID bool   `mapstructure:"show_secondary_id"`

	Currency  CurrencyConfig  `mapstructure:"currency"`
	Legacy    LegacyConfig    `mapstructure:"legacy"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Extract   ExtractConfig   `mapstructure:"extract"`
	Log       LogConfig       `mapstructure:"log"`
}

type CurrencyConfig struct {
	Thousands string `mapstructure:"thousands"`
	Decimal   string `mapstructure:"decimal"`
}

type LegacyConfig struct {
	Encoding       string `mapstructure:"encoding"`
	ExcludedMarker string `mapstructure:"excluded_marker"`
}

type ReferenceConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type ExtractConfig struct {
	Pattern string `mapstructure:"pattern"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "")
	v.SetDefault("include_amounts", true)
	v.SetDefault("output_format", string(domain.FormatGroupedText))
	v.SetDefault("output_encoding", "utf-8")
	v.SetDefault("show_secondary_id", false)
	v.SetDefault("currency.thousands", ".")
	v.SetDefault("currency.decimal", ",")
	v.SetDefault("legacy.encoding", "latin1")
	v.SetDefault("legacy.excluded_marker", parser.DefaultExcludedMarker)
	v.SetDefault("reference.backend", BackendJSON)
	v.SetDefault("reference.path", "reference.json")
	v.SetDefault("extract.pattern", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// Load loads configuration from all sources in order of precedence:
// 1. Command-line flags bound to v
// 2. RECONCILER_* environment variables, including those from .env files
// 3. The config file: configFile, else ./reconciler.yaml, else ~/.reconciler.yaml
// 4. Defaults
func Load(v *viper.Viper, configFile string) (*Config, error) {
	loadEnvFiles()

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	return cfg, nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env; neither overrides the real environment.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func findConfigFile() string {
	candidates := []string{"reconciler.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".reconciler.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Options resolves the per-run options. defaultMode applies when no mode is
// configured.
func (c *Config) Options(defaultMode domain.Mode) (domain.Options, error) {
	mode := defaultMode
	if strings.TrimSpace(c.Mode) != "" {
		m, err := domain.ParseMode(c.Mode)
		if err != nil {
			return domain.Options{}, err
		}
		mode = m
	}
	format, err := domain.ParseOutputFormat(c.OutputFormat)
	if err != nil {
		return domain.Options{}, err
	}
	return domain.Options{
		Mode:            mode,
		IncludeAmounts:  c.IncludeAmounts,
		OutputFormat:    format,
		ShowSecondaryID: c.ShowSecondaryID,
	}, nil
}

// Codec builds the currency codec from the configured separators.
func (c *Config) Codec() (currency.Codec, error) {
	thousands, err := singleRune("currency.thousands", c.Currency.Thousands)
	if err != nil {
		return currency.Codec{}, err
	}
	dec, err := singleRune("currency.decimal", c.Currency.Decimal)
	if err != nil {
		return currency.Codec{}, err
	}
	if thousands == dec {
		return currency.Codec{}, errors.New("currency separators must differ")
	}
	return currency.Codec{Thousands: thousands, Decimal: dec}, nil
}

func singleRune(key, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// OutputEnc is the encoding text reports are written in.
func (c *Config) OutputEnc() (encoding.Encoding, error) {
	return textenc.Lookup(c.OutputEncoding)
}

// LegacyEnc is the encoding legacy exports are read in.
func (c *Config) LegacyEnc() (encoding.Encoding, error) {
	return textenc.Lookup(c.Legacy.Encoding)
}

// Logging converts the log section for the logging package.
func (c *Config) Logging() *logging.Config {
	cfg := logging.DefaultConfig()
	if c.Log.Level != "" {
		cfg.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		cfg.Format = c.Log.Format
	}
	if c.Log.Output != "" {
		cfg.Output = c.Log.Output
	}
	return cfg
}

// Validate checks settings that are not checked when they are used.
func (c *Config) Validate() error {
	switch c.Reference.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown reference backend %q", c.Reference.Backend)
	}
	return nil
}
