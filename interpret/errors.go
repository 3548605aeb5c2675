package interpret

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey means no provider credential was configured. It is a
	// setup problem: the pipeline refuses to run at all rather than attempt
	// a call that cannot succeed.
	ErrMissingAPIKey = errors.New("no model API key configured")

	ErrEmptyMessage        = errors.New("message is empty")
	ErrUnknownPlatform     = errors.New("unknown platform")
	ErrUnknownRelationship = errors.New("unknown relationship context")
)

// ValidationError means the model's raw output failed the response schema.
// The whole interpretation is discarded when this happens; malformed model
// data is never patched into defaults because it feeds user-facing risk and
// tone signals.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid model response: " + e.Reason
	}
	return fmt.Sprintf("invalid model response: %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ParsePlatform maps a wire/CLI string onto a Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// ParseRelationship maps a wire/CLI string onto a Relationship.
func ParseRelationship(s string) (Relationship, error) {
	r := Relationship(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRelationship, s)
	}
	return r, nil
}
