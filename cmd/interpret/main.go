// Command interpret decodes the emoji usage in a single message and prints
// the interpretation JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/emojidecoded/decoder/interpret"
	"github.com/emojidecoded/decoder/interpret/provider"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	platform, err := interpret.ParsePlatform(cfg.Platform)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	relationship, err := interpret.ParseRelationship(cfg.Context)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	message := cfg.Message
	if message == "" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("read stdin: %w", err).Error())
			os.Exit(2)
		}
		message = strings.TrimSpace(string(b))
	}
	if message == "" {
		fmt.Fprintln(os.Stderr, "empty message (pass -message or pipe text on stdin)")
		os.Exit(2)
	}

	var catalog *interpret.Catalog
	if cfg.CatalogPath != "" {
		catalog, err = interpret.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(2)
		}
	}

	client, err := provider.New(provider.Config{
		APIKey:  apiKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	interp := interpret.New(client, catalog)
	result, err := interp.Interpret(ctx, interpret.Request{
		Message:  message,
		Platform: platform,
		Context:  relationship,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	var out []byte
	if cfg.Pretty {
		out, err = json.MarshalIndent(result, "", "  ")
	} else {
		out, err = json.Marshal(result)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("marshal result: %w", err).Error())
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
