package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	Inputs []string
	Output string
	Pretty bool
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.Output, "o", "", "Path to write the merged catalog JSON (atomic replace)")
	fs.BoolVar(&cfg.Pretty, "pretty", true, "Indent the output JSON")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	for _, a := range fs.Args() {
		cfg.Inputs = append(cfg.Inputs, filepath.Clean(a))
	}
	if cfg.Output != "" {
		cfg.Output = filepath.Clean(cfg.Output)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Inputs) == 0 {
		return errors.New("missing input catalog file(s)")
	}
	if c.Output == "" {
		return errors.New("missing -o output path")
	}
	return nil
}
