package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/emojidecoded/decoder/interpret"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("catalog-pack", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{"-o", "out.json", "a.json", "b.json"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.Output != "out.json" || len(cfg.Inputs) != 2 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !cfg.Pretty {
		t.Fatalf("Pretty should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if err := (Config{Output: "out.json"}).Validate(); err == nil {
		t.Fatalf("expected error for missing inputs")
	}
	if err := (Config{Inputs: []string{"a.json"}}).Validate(); err == nil {
		t.Fatalf("expected error for missing output")
	}
}

func TestMergeEntries(t *testing.T) {
	t.Parallel()

	inputs := [][]interpret.CatalogEntry{
		{
			{Character: "😊", Slug: "smiling-face-with-smiling-eyes"},
			{Character: "😀", Slug: "grinning-face"},
			{Character: "", Slug: "orphan-slug"},
		},
		{
			{Character: "😀", Slug: "grinning-face-v2"},
			{Character: "👋", Slug: "waving-hand"},
		},
	}

	merged, warnings := mergeEntries(inputs)
	if len(merged) != 3 {
		t.Fatalf("merged=%+v", merged)
	}
	// Sorted by character, first slug wins.
	bySlug := make(map[string]string)
	for _, e := range merged {
		bySlug[e.Character] = e.Slug
	}
	if bySlug["😀"] != "grinning-face" {
		t.Fatalf("dup resolution: %+v", bySlug)
	}
	for i := 1; i < len(merged); i++ {
		if merged[i-1].Character >= merged[i].Character {
			t.Fatalf("not sorted: %+v", merged)
		}
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings=%v", warnings)
	}
}

func TestRun_OutputLoadsAsCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "export.json")
	out := filepath.Join(dir, "catalog.json")

	data := `[
	  {"character": "😀", "slug": "grinning-face"},
	  {"character": "😀", "slug": "dup"},
	  {"character": "👋", "slug": "waving-hand"}
	]`
	if err := os.WriteFile(in, []byte(data), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := run(Config{Inputs: []string{in}, Output: out, Pretty: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	catalog, err := interpret.LoadCatalog(out)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if catalog.Len() != 2 {
		t.Fatalf("Len=%d", catalog.Len())
	}
	if slug, ok := catalog.LookupSlug("😀"); !ok || slug != "grinning-face" {
		t.Fatalf("slug=%q ok=%v", slug, ok)
	}
}
