package interpret

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const validResponseJSON = `{
  "emojis": [
    {"character": "😀", "meaning": "signals genuine enthusiasm here"},
    {"character": "🙃", "meaning": "undercuts the previous sentence"}
  ],
  "interpretation": "Friendly on the surface with a hint of self-deprecation.",
  "metrics": {
    "sarcasmProbability": 35,
    "passiveAggressionProbability": 10,
    "overallTone": "positive",
    "confidence": 72.5
  },
  "redFlags": [
    {"type": "guilt-tripping", "description": "Implies the reader owes a reply.", "severity": "low"}
  ]
}`

func TestParseModelResponse_RoundTrip(t *testing.T) {
	t.Parallel()

	got, err := ParseModelResponse(validResponseJSON)
	if err != nil {
		t.Fatalf("ParseModelResponse: %v", err)
	}

	if len(got.Emojis) != 2 {
		t.Fatalf("emojis len=%d, want 2", len(got.Emojis))
	}
	if got.Emojis[1].Character != "🙃" || got.Emojis[1].Meaning != "undercuts the previous sentence" {
		t.Fatalf("emojis[1]=%+v", got.Emojis[1])
	}
	if got.Interpretation != "Friendly on the surface with a hint of self-deprecation." {
		t.Fatalf("interpretation=%q", got.Interpretation)
	}
	if got.Metrics.SarcasmProbability != 35 || got.Metrics.PassiveAggressionProbability != 10 {
		t.Fatalf("metrics=%+v", got.Metrics)
	}
	if got.Metrics.OverallTone != TonePositive || got.Metrics.Confidence != 72.5 {
		t.Fatalf("metrics=%+v", got.Metrics)
	}
	if len(got.RedFlags) != 1 || got.RedFlags[0].Severity != SeverityLow || got.RedFlags[0].Type != "guilt-tripping" {
		t.Fatalf("redFlags=%+v", got.RedFlags)
	}
}

func TestParseModelResponse_EmptyRedFlagsAllowed(t *testing.T) {
	t.Parallel()

	got, err := ParseModelResponse(`{
		"emojis": [],
		"interpretation": "Plain message.",
		"metrics": {"sarcasmProbability": 0, "passiveAggressionProbability": 0, "overallTone": "neutral", "confidence": 90},
		"redFlags": []
	}`)
	if err != nil {
		t.Fatalf("ParseModelResponse: %v", err)
	}
	if len(got.RedFlags) != 0 || len(got.Emojis) != 0 {
		t.Fatalf("got=%+v", got)
	}
}

func TestParseModelResponse_MalformedJSON(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "not json", `{"emojis": [`} {
		_, err := ParseModelResponse(raw)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("raw=%q err=%v, want *ValidationError", raw, err)
		}
	}
}

func TestParseModelResponse_MissingTopLevelFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		strip string
	}{
		{"no emojis", "emojis"},
		{"no interpretation", "interpretation"},
		{"no metrics", "metrics"},
		{"no redFlags", "redFlags"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := dropTopLevelField(t, validResponseJSON, tc.strip)
			_, err := ParseModelResponse(raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err=%v, want *ValidationError", err)
			}
			if verr.Field != tc.strip {
				t.Fatalf("Field=%q, want %q", verr.Field, tc.strip)
			}
		})
	}
}

func TestParseModelResponse_OutOfRangeMetricRejected(t *testing.T) {
	t.Parallel()

	raw := strings.Replace(validResponseJSON, `"sarcasmProbability": 35`, `"sarcasmProbability": 150`, 1)
	_, err := ParseModelResponse(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	if verr.Field != "metrics.sarcasmProbability" {
		t.Fatalf("Field=%q", verr.Field)
	}

	raw = strings.Replace(validResponseJSON, `"confidence": 72.5`, `"confidence": -1`, 1)
	if _, err := ParseModelResponse(raw); err == nil {
		t.Fatalf("negative confidence accepted")
	}
}

func TestParseModelResponse_InvalidToneRejected(t *testing.T) {
	t.Parallel()

	raw := strings.Replace(validResponseJSON, `"overallTone": "positive"`, `"overallTone": "happy"`, 1)
	_, err := ParseModelResponse(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	if verr.Field != "metrics.overallTone" {
		t.Fatalf("Field=%q", verr.Field)
	}
}

func TestParseModelResponse_InvalidSeverityRejected(t *testing.T) {
	t.Parallel()

	raw := strings.Replace(validResponseJSON, `"severity": "low"`, `"severity": "critical"`, 1)
	_, err := ParseModelResponse(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	if verr.Field != "redFlags[0].severity" {
		t.Fatalf("Field=%q", verr.Field)
	}
}

func TestParseModelResponse_MissingMetricSubfield(t *testing.T) {
	t.Parallel()

	raw := strings.Replace(validResponseJSON, `"confidence": 72.5`, `"ignored": 1`, 1)
	_, err := ParseModelResponse(raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	if verr.Field != "metrics.confidence" {
		t.Fatalf("Field=%q", verr.Field)
	}
}

func TestParseModelResponse_ExtraTopLevelFieldTolerated(t *testing.T) {
	t.Parallel()

	raw := strings.TrimSuffix(strings.TrimSpace(validResponseJSON), "}") + `,"debug": true}`
	if _, err := ParseModelResponse(raw); err != nil {
		t.Fatalf("extra field rejected: %v", err)
	}
}

// dropTopLevelField rebuilds the fixture without one of its top-level keys.
func dropTopLevelField(t *testing.T, raw, field string) string {
	t.Helper()

	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("fixture unmarshal: %v", err)
	}
	if _, ok := m[field]; !ok {
		t.Fatalf("field %q not in fixture", field)
	}
	delete(m, field)
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("fixture marshal: %v", err)
	}
	return string(b)
}
