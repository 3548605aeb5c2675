package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the decode-server configuration. Values come from an optional
// TOML file and may be overridden per-field by flags; the API key itself is
// never stored in the file, only the name of the env var that holds it.
type Config struct {
	Addr            string `toml:"addr"`
	Model           string `toml:"model"`
	BaseURL         string `toml:"base_url"`
	APIKeyEnv       string `toml:"api_key_env"`
	CatalogPath     string `toml:"catalog_path"`
	WatchCatalog    bool   `toml:"watch_catalog"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	MaxMessageChars int    `toml:"max_message_chars"`
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("missing addr")
	}
	if c.Model == "" {
		return errors.New("missing model")
	}
	if c.APIKeyEnv == "" {
		return errors.New("missing api_key_env")
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds must be >= 0")
	}
	if c.MaxMessageChars < 0 {
		return errors.New("max_message_chars must be >= 0")
	}
	if c.WatchCatalog && c.CatalogPath == "" {
		return errors.New("watch_catalog requires catalog_path")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Addr:            ":8484",
		Model:           "gpt-5-mini",
		APIKeyEnv:       "OPENAI_API_KEY",
		WatchCatalog:    false,
		TimeoutSeconds:  60,
		MaxMessageChars: 4_000,
	}
}

type cliOverrides struct {
	ConfigPath  string
	Addr        string
	Model       string
	CatalogPath string
	APIKey      string
}

func parseFlags(fs *flag.FlagSet, args []string) (cliOverrides, error) {
	var o cliOverrides
	fs.SetOutput(os.Stderr)

	fs.StringVar(&o.ConfigPath, "config", "", "Path to TOML config file")
	fs.StringVar(&o.Addr, "addr", "", "Listen address (overrides config)")
	fs.StringVar(&o.Model, "model", "", "OpenAI model (overrides config)")
	fs.StringVar(&o.CatalogPath, "catalog", "", "Path to the emoji catalog JSON export (overrides config)")
	fs.StringVar(&o.APIKey, "api-key", "", "OpenAI API key (overrides the configured env var)")

	if err := fs.Parse(args); err != nil {
		return cliOverrides{}, err
	}
	if o.ConfigPath != "" {
		o.ConfigPath = filepath.Clean(o.ConfigPath)
	}
	if o.CatalogPath != "" {
		o.CatalogPath = filepath.Clean(o.CatalogPath)
	}
	return o, nil
}

// loadConfig merges defaults, the TOML file (when given), and CLI
// overrides, in that order.
func loadConfig(o cliOverrides) (Config, error) {
	cfg := defaultConfig()
	if o.ConfigPath != "" {
		if _, err := toml.DecodeFile(o.ConfigPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", o.ConfigPath, err)
		}
	}
	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	if o.Model != "" {
		cfg.Model = o.Model
	}
	if o.CatalogPath != "" {
		cfg.CatalogPath = o.CatalogPath
	}
	if cfg.CatalogPath != "" {
		cfg.CatalogPath = filepath.Clean(cfg.CatalogPath)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveAPIKey prefers the -api-key flag, then the configured env var.
func resolveAPIKey(cfg Config, o cliOverrides) string {
	if o.APIKey != "" {
		return o.APIKey
	}
	return os.Getenv(cfg.APIKeyEnv)
}
