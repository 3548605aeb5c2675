package interpret

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawModelResponse mirrors ModelResponse with pointer fields so that a
// missing top-level field is distinguishable from a present-but-zero one.
type rawModelResponse struct {
	Emojis         *[]ModelEmojiMeaning `json:"emojis"`
	Interpretation *string              `json:"interpretation"`
	Metrics        *rawMetrics          `json:"metrics"`
	RedFlags       *[]RedFlag           `json:"redFlags"`
}

type rawMetrics struct {
	SarcasmProbability           *float64 `json:"sarcasmProbability"`
	PassiveAggressionProbability *float64 `json:"passiveAggressionProbability"`
	OverallTone                  *Tone    `json:"overallTone"`
	Confidence                   *float64 `json:"confidence"`
}

// ParseModelResponse converts the model's raw text output into a validated
// ModelResponse. This is the single fallible boundary between untrusted
// model text and typed data: the response is accepted whole or rejected
// whole with a *ValidationError. Nothing is clamped, coerced, or defaulted.
//
// Rejection cases: text that is not a JSON object, any missing top-level
// field (emojis, interpretation, metrics, redFlags), any metric outside
// [0,100], an overallTone outside {positive, neutral, negative}, and any
// red flag severity outside {low, medium, high}. Red flag types are
// deliberately free-form and pass through as-is. Unknown extra fields are
// tolerated.
func ParseModelResponse(raw string) (ModelResponse, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ModelResponse{}, validationErr("", "empty response")
	}

	var r rawModelResponse
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return ModelResponse{}, validationErr("", "malformed JSON: %v", err)
	}

	if r.Emojis == nil {
		return ModelResponse{}, validationErr("emojis", "missing field")
	}
	if r.Interpretation == nil {
		return ModelResponse{}, validationErr("interpretation", "missing field")
	}
	if r.Metrics == nil {
		return ModelResponse{}, validationErr("metrics", "missing field")
	}
	if r.RedFlags == nil {
		return ModelResponse{}, validationErr("redFlags", "missing field")
	}

	metrics, err := validateMetrics(*r.Metrics)
	if err != nil {
		return ModelResponse{}, err
	}

	for i, f := range *r.RedFlags {
		if !f.Severity.Valid() {
			return ModelResponse{}, validationErr(
				fmt.Sprintf("redFlags[%d].severity", i), "not one of low/medium/high: %q", f.Severity)
		}
	}

	return ModelResponse{
		Emojis:         *r.Emojis,
		Interpretation: *r.Interpretation,
		Metrics:        metrics,
		RedFlags:       *r.RedFlags,
	}, nil
}

func validateMetrics(m rawMetrics) (Metrics, error) {
	sarcasm, err := percentField("metrics.sarcasmProbability", m.SarcasmProbability)
	if err != nil {
		return Metrics{}, err
	}
	passive, err := percentField("metrics.passiveAggressionProbability", m.PassiveAggressionProbability)
	if err != nil {
		return Metrics{}, err
	}
	confidence, err := percentField("metrics.confidence", m.Confidence)
	if err != nil {
		return Metrics{}, err
	}
	if m.OverallTone == nil {
		return Metrics{}, validationErr("metrics.overallTone", "missing field")
	}
	if !m.OverallTone.Valid() {
		return Metrics{}, validationErr("metrics.overallTone", "not one of positive/neutral/negative: %q", *m.OverallTone)
	}
	return Metrics{
		SarcasmProbability:           sarcasm,
		PassiveAggressionProbability: passive,
		OverallTone:                  *m.OverallTone,
		Confidence:                   confidence,
	}, nil
}

func percentField(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, validationErr(field, "missing field")
	}
	if *v < 0 || *v > 100 {
		return 0, validationErr(field, "out of range [0,100]: %v", *v)
	}
	return *v, nil
}
