package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/maakle/bombo-go/internal/asset"
	"github.com/maakle/bombo-go/internal/generation"
	"github.com/maakle/bombo-go/internal/storage"
	"github.com/maakle/bombo-go/pkg/logger"
)

// Responder posts a follow-up message to a slash command's response URL.
type Responder interface {
	Respond(ctx context.Context, responseURL string, msg *slack.WebhookMessage) error
}

// webhookResponder posts through Slack's response-URL webhook, which is how
// both interim and terminal messages reach the invoking channel.
type webhookResponder struct{}

func (webhookResponder) Respond(ctx context.Context, responseURL string, msg *slack.WebhookMessage) error {
	return slack.PostWebhookContext(ctx, responseURL, msg)
}

// Pipeline handles one /generate invocation end to end: validate, interim
// status, generate, normalize, store, terminal message. Invocations are
// independent; the only shared state is the storage handle.
type Pipeline struct {
	assets    asset.ReferenceLoader
	generator generation.Generator
	store     storage.ObjectStorage
	responder Responder
}

func NewPipeline(assets asset.ReferenceLoader, generator generation.Generator, store storage.ObjectStorage) *Pipeline {
	return &Pipeline{
		assets:    assets,
		generator: generator,
		store:     store,
		responder: webhookResponder{},
	}
}

// Handle runs the pipeline for one acknowledged slash command. Every error
// past validation is caught here and reported to the channel; a command
// never crashes the process.
func (p *Pipeline) Handle(ctx context.Context, cmd slack.SlashCommand) {
	prompt := strings.TrimSpace(cmd.Text)
	logger.Log.Info().Str("prompt", prompt).Str("user", cmd.UserID).Msg("Received prompt")

	if prompt == "" {
		p.respond(ctx, cmd.ResponseURL, usageMessage())
		return
	}

	p.respond(ctx, cmd.ResponseURL, processingMessage(prompt))

	imageURL, err := p.run(ctx, prompt)
	if err != nil {
		logger.Log.Error().Err(err).Str("prompt", prompt).Msg("Command failed")
		p.respond(ctx, cmd.ResponseURL, failureMessage(prompt, err))
		return
	}

	p.respond(ctx, cmd.ResponseURL, successMessage(prompt, imageURL))
}

// run executes the generation chain. Single attempt per step, no retry.
func (p *Pipeline) run(ctx context.Context, prompt string) (string, error) {
	reference, err := p.assets.ReferenceImage()
	if err != nil {
		return "", err
	}

	output, err := p.generator.Generate(ctx, generation.Input{
		Theme:           prompt,
		ReferenceImages: []string{reference},
	})
	if err != nil {
		return "", err
	}

	sourceURL, err := generation.Normalize(output)
	if err != nil {
		return "", fmt.Errorf("failed to process generated image: %w", err)
	}

	fileName := storage.GenerateFileName(prompt)
	storedURL, err := p.store.StoreImage(ctx, sourceURL, fileName)
	if err != nil {
		return "", fmt.Errorf("failed to store generated image: %w", err)
	}

	return storedURL, nil
}

func (p *Pipeline) respond(ctx context.Context, responseURL string, msg *slack.WebhookMessage) {
	if err := p.responder.Respond(ctx, responseURL, msg); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to post response")
	}
}
