// Command catalog-pack merges one or more emoji catalog JSON exports into a
// single normalized file: blank rows dropped, duplicate characters resolved
// first-wins, entries sorted by character. The output is written with an
// atomic same-directory rename so a running decode-server watching the file
// never observes a partial catalog.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/emojidecoded/decoder/interpret"
	"github.com/emojidecoded/decoder/interpret/fileutils"
)

func main() {
	fs := flag.NewFlagSet("catalog-pack", flag.ContinueOnError)
	cfg, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fs.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	var inputs [][]interpret.CatalogEntry
	for _, path := range cfg.Inputs {
		entries, err := readEntries(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, entries)
	}

	merged, warnings := mergeEntries(inputs)
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	if err := fileutils.WriteJSONFileAtomic(cfg.Output, merged, cfg.Pretty); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d entries to %s\n", len(merged), cfg.Output)
	return nil
}

func readEntries(path string) ([]interpret.CatalogEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []interpret.CatalogEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return entries, nil
}

// mergeEntries applies the same normalization the decoder's catalog loader
// applies at read time: blank characters or slugs are dropped and the first
// slug seen for a character wins. Inputs are processed in argument order.
func mergeEntries(inputs [][]interpret.CatalogEntry) ([]interpret.CatalogEntry, []string) {
	var warnings []string
	seen := make(map[string]string)
	var merged []interpret.CatalogEntry

	for _, entries := range inputs {
		for _, e := range entries {
			if e.Character == "" || e.Slug == "" {
				warnings = append(warnings, fmt.Sprintf("skipping blank entry %+v", e))
				continue
			}
			if prev, ok := seen[e.Character]; ok {
				if prev != e.Slug {
					warnings = append(warnings, fmt.Sprintf("duplicate character %s: keeping %q, dropping %q", e.Character, prev, e.Slug))
				}
				continue
			}
			seen[e.Character] = e.Slug
			merged = append(merged, e)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Character < merged[j].Character
	})
	return merged, warnings
}
