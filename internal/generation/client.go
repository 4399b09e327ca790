package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/replicate/replicate-go"

	"github.com/maakle/bombo-go/pkg/logger"
)

// model is the image backend run for every sticker.
const model = "openai/gpt-image-1"

// ErrGeneration wraps any backend-call failure, including timeouts.
var ErrGeneration = errors.New("image generation failed")

// Input is the per-request portion of a generation call. The quality
// directives are fixed and applied by the client.
type Input struct {
	Theme           string
	ReferenceImages []string
}

// Generator produces a backend output for one sticker request. The returned
// value is backend-defined and must go through Normalize before use.
type Generator interface {
	Generate(ctx context.Context, in Input) (any, error)
}

// Client calls the Replicate backend. Single attempt per request, no retry;
// a failed call fails the whole command.
type Client struct {
	r8        *replicate.Client
	openAIKey string
	timeout   time.Duration
}

func NewClient(replicateToken, openAIKey string, timeout time.Duration) (*Client, error) {
	r8, err := replicate.NewClient(replicate.WithToken(replicateToken))
	if err != nil {
		return nil, fmt.Errorf("failed to build replicate client: %w", err)
	}
	return &Client{
		r8:        r8,
		openAIKey: openAIKey,
		timeout:   timeout,
	}, nil
}

// Generate runs the model once with the templated prompt and the fixed
// quality directives. The call is bounded by the configured timeout.
func (c *Client) Generate(ctx context.Context, in Input) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()
	output, err := c.r8.Run(ctx, model, replicate.PredictionInput{
		"openai_api_key":     c.openAIKey,
		"prompt":             buildPrompt(in.Theme),
		"quality":            "auto",
		"background":         "transparent",
		"moderation":         "auto",
		"aspect_ratio":       "1:1",
		"input_images":       in.ReferenceImages,
		"output_format":      "png",
		"input_fidelity":     "low",
		"number_of_images":   1,
		"output_compression": 90,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	logger.Log.Info().
		Str("model", model).
		Dur("elapsed", time.Since(started)).
		Msg("Generation call completed")

	return output, nil
}

var _ Generator = (*Client)(nil)
