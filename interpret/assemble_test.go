package interpret

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func sampleResponse() ModelResponse {
	return ModelResponse{
		Emojis: []ModelEmojiMeaning{
			{Character: "😀", Meaning: "genuine warmth"},
			{Character: "🦖", Meaning: "playful absurdity"},
		},
		Interpretation: "Warm and a little silly.",
		Metrics: Metrics{
			SarcasmProbability:           5,
			PassiveAggressionProbability: 0,
			OverallTone:                  TonePositive,
			Confidence:                   80,
		},
		RedFlags: []RedFlag{
			{Type: "manipulation", Description: "first", Severity: SeverityHigh},
			{Type: "dismissiveness", Description: "second", Severity: SeverityLow},
		},
	}
}

func TestBuildResult_SlugAttachment(t *testing.T) {
	t.Parallel()

	slugMap := map[string]string{"😀": "grinning-face"}
	got := BuildResult("hi 😀 🦖", sampleResponse(), slugMap)

	if len(got.Emojis) != 2 {
		t.Fatalf("emojis len=%d, want 2", len(got.Emojis))
	}
	if got.Emojis[0].Slug != "grinning-face" {
		t.Fatalf("emojis[0].Slug=%q", got.Emojis[0].Slug)
	}
	if got.Emojis[1].Slug != "" {
		t.Fatalf("emojis[1].Slug=%q, want unset", got.Emojis[1].Slug)
	}

	// The uncataloged entry must not carry a slug key at all on the wire.
	b, err := json.Marshal(got.Emojis[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "slug") {
		t.Fatalf("serialized entry has slug key: %s", b)
	}
}

func TestBuildResult_PassThroughAndOrdering(t *testing.T) {
	t.Parallel()

	resp := sampleResponse()
	got := BuildResult("hi 😀 🦖", resp, nil)

	if got.Message != "hi 😀 🦖" {
		t.Fatalf("Message=%q", got.Message)
	}
	if got.Interpretation != resp.Interpretation {
		t.Fatalf("Interpretation=%q", got.Interpretation)
	}
	if got.Metrics != resp.Metrics {
		t.Fatalf("Metrics=%+v, want %+v", got.Metrics, resp.Metrics)
	}
	if len(got.RedFlags) != 2 || got.RedFlags[0].Type != "manipulation" || got.RedFlags[1].Type != "dismissiveness" {
		t.Fatalf("RedFlags=%+v", got.RedFlags)
	}
}

func TestBuildResult_IDFormatAndUniqueness(t *testing.T) {
	t.Parallel()

	resp := sampleResponse()
	a := BuildResult("same", resp, nil)
	b := BuildResult("same", resp, nil)

	if !strings.HasPrefix(a.ID, "int_") || len(a.ID) <= len("int_") {
		t.Fatalf("ID=%q", a.ID)
	}
	if a.ID == b.ID {
		t.Fatalf("two calls produced the same id %q", a.ID)
	}
}

func TestBuildResult_TimestampIsRFC3339UTC(t *testing.T) {
	t.Parallel()

	got := BuildResult("hi", sampleResponse(), nil)
	ts, err := time.Parse(time.RFC3339, got.Timestamp)
	if err != nil {
		t.Fatalf("Timestamp=%q: %v", got.Timestamp, err)
	}
	if d := time.Since(ts); d < 0 || d > time.Minute {
		t.Fatalf("Timestamp=%q not near now", got.Timestamp)
	}
}
