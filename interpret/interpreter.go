package interpret

import (
	"context"
	"fmt"
	"strings"
)

// ModelClient is the language-model capability the Interpreter depends on:
// given instructions and a user turn, it returns the model's raw text
// output, which is expected (but not trusted) to be JSON.
type ModelClient interface {
	Complete(ctx context.Context, instructions, input string) (string, error)
}

// StreamingModelClient is optionally implemented by model clients that can
// deliver partial text while the model generates. The accumulated text it
// returns is validated exactly like the non-streaming path; deltas are a
// display affordance, never a source of truth.
type StreamingModelClient interface {
	CompleteStreaming(ctx context.Context, instructions, input string, onDelta func(delta string)) (string, error)
}

// Interpreter runs the interpretation pipeline: extract emoji, resolve
// catalog slugs, call the model, validate its output, assemble the result.
// One Interpreter serves concurrent requests; it holds only the model
// client and the immutable catalog.
type Interpreter struct {
	client  ModelClient
	catalog *Catalog
}

// New builds an Interpreter. A nil catalog is allowed (no slugs attach);
// a nil client is allowed at construction but every Interpret call will
// fail fast with ErrMissingAPIKey before doing any work.
func New(client ModelClient, catalog *Catalog) *Interpreter {
	return &Interpreter{client: client, catalog: catalog}
}

// Interpret runs one end-to-end interpretation. Every stage either
// succeeds fully or aborts the call with a typed error; there is no
// partial result and no retry here (retry policy belongs to the model
// client). The provider call is the only stage that touches the network.
func (i *Interpreter) Interpret(ctx context.Context, req Request) (*Result, error) {
	return i.run(ctx, req, nil)
}

// InterpretStream behaves like Interpret but forwards raw model text
// deltas to onDelta as they arrive, when the underlying client supports
// streaming. The final result is still assembled only from the fully
// accumulated, schema-validated text.
func (i *Interpreter) InterpretStream(ctx context.Context, req Request, onDelta func(delta string)) (*Result, error) {
	return i.run(ctx, req, onDelta)
}

func (i *Interpreter) run(ctx context.Context, req Request, onDelta func(string)) (*Result, error) {
	if i == nil || i.client == nil {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if !req.Platform.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, req.Platform)
	}
	if !req.Context.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRelationship, req.Context)
	}

	extracted := ExtractEmojis(req.Message)
	slugMap := i.catalog.BuildSlugMap(extracted)
	input := BuildPromptInput(req.Message, req.Platform, req.Context, extracted)

	var raw string
	var err error
	if sc, ok := i.client.(StreamingModelClient); ok && onDelta != nil {
		raw, err = sc.CompleteStreaming(ctx, InterpreterInstructions, input, onDelta)
	} else {
		raw, err = i.client.Complete(ctx, InterpreterInstructions, input)
	}
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	resp, err := ParseModelResponse(raw)
	if err != nil {
		return nil, err
	}

	result := BuildResult(req.Message, resp, slugMap)
	return &result, nil
}
