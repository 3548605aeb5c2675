// Package provider implements interpret.ModelClient against the OpenAI
// Responses API, with strict JSON-schema structured output and a small
// retry policy for rate limits and transient server errors.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/emojidecoded/decoder/interpret"
)

const defaultModel = "gpt-5-mini"

// Config configures the OpenAI-backed model client.
type Config struct {
	// APIKey is required; an empty key is a configuration error surfaced
	// before any network call.
	APIKey string
	// Model defaults to gpt-5-mini.
	Model string
	// BaseURL overrides the API endpoint (for proxies/compatible servers).
	BaseURL string
	// MaxOutputTokens defaults to 2500.
	MaxOutputTokens int64
}

// Client calls the OpenAI Responses API and returns the model's raw output
// text. It implements both interpret.ModelClient and
// interpret.StreamingModelClient.
type Client struct {
	api             *openai.Client
	model           string
	maxOutputTokens int64
}

var interpretationSchema = generateSchema[interpret.ModelResponse]()

// New validates the credential and builds a Client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, interpret.ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 2500
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	api := openai.NewClient(opts...)
	return &Client{api: &api, model: cfg.Model, maxOutputTokens: cfg.MaxOutputTokens}, nil
}

// Complete sends one request and returns the full output text.
func (c *Client) Complete(ctx context.Context, instructions, input string) (string, error) {
	resp, err := callWithRetry(ctx, c.api, c.params(instructions, input))
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// CompleteStreaming sends one request and forwards output text deltas to
// onDelta as they arrive. The returned string is the full accumulated
// text; callers validate it the same way as a non-streamed response.
func (c *Client) CompleteStreaming(ctx context.Context, instructions, input string, onDelta func(string)) (string, error) {
	stream := c.api.Responses.NewStreaming(ctx, c.params(instructions, input))
	defer stream.Close()

	var b strings.Builder
	for stream.Next() {
		ev := stream.Current()
		if ev.Type == "response.output_text.delta" && ev.Delta.OfString != "" {
			b.WriteString(ev.Delta.OfString)
			if onDelta != nil {
				onDelta(ev.Delta.OfString)
			}
		}
	}
	if err := stream.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (c *Client) params(instructions, input string) responses.ResponseNewParams {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "InterpretationResponse",
			Schema:      interpretationSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Emoji interpretation JSON"),
			Type:        "json_schema",
		},
	}

	return responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(c.maxOutputTokens),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}
}

func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{5 * time.Second, 15 * time.Second, 30 * time.Second}
	serverErrorWaitTimes := []time.Duration{2 * time.Second, 5 * time.Second, 10 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			var wait time.Duration
			switch {
			case isRateLimitError(err):
				wait = rateLimitWaitTimes[attempt]
			case isServerError(err):
				wait = serverErrorWaitTimes[attempt]
			default:
				return nil, err
			}
			if attempt == maxRetries-1 {
				return nil, err
			}
			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to OpenAI API issues", maxRetries)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
