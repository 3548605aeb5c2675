package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	Message     string
	Platform    string
	Context     string
	CatalogPath string
	Model       string
	APIKey      string
	BaseURL     string
	Pretty      bool

	TimeoutSeconds int
}

func (c Config) Validate() error {
	if c.Platform == "" {
		return errors.New("missing -platform")
	}
	if c.Context == "" {
		return errors.New("missing -context")
	}
	if c.Model == "" {
		return errors.New("missing -model")
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Platform:       "other",
		Context:        "friend",
		Model:          "gpt-5-mini",
		TimeoutSeconds: 60,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Message, "message", "", "Message to interpret (default: read from stdin)")
	fs.StringVar(&cfg.Platform, "platform", cfg.Platform, "Messaging platform (imessage, instagram, tiktok, whatsapp, slack, discord, twitter, other)")
	fs.StringVar(&cfg.Context, "context", cfg.Context, "Relationship context (romantic_partner, friend, family, coworker, acquaintance, stranger)")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "Optional path to the emoji catalog JSON export (character/slug pairs)")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model to use (e.g. gpt-5-mini)")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Optional OpenAI-compatible API base URL")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print the result JSON")
	fs.IntVar(&cfg.TimeoutSeconds, "timeout", cfg.TimeoutSeconds, "Per-call timeout in seconds (0 = no timeout)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.CatalogPath != "" {
		cfg.CatalogPath = filepath.Clean(cfg.CatalogPath)
	}
	return cfg, nil
}
