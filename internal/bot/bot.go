// internal/bot/bot.go
package bot

import (
	"context"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/maakle/bombo-go/pkg/logger"
)

// generateCommand is the only slash command the bot answers.
const generateCommand = "/generate"

// Bot runs the socket-mode connection and dispatches slash commands to the
// pipeline, one goroutine per invocation.
type Bot struct {
	client   *socketmode.Client
	pipeline *Pipeline
}

func New(botToken, appToken string, pipeline *Pipeline) *Bot {
	api := slack.New(
		botToken,
		slack.OptionAppLevelToken(appToken),
	)
	return &Bot{
		client:   socketmode.New(api),
		pipeline: pipeline,
	}
}

// Run connects in socket mode and processes events until ctx is cancelled.
// The slash-command ack must go out immediately; the pipeline continues in
// its own goroutine and reports through the response URL.
func (b *Bot) Run(ctx context.Context) error {
	go b.consumeEvents(ctx)

	logger.Log.Info().Msg("Starting Slack bot in socket mode")
	return b.client.RunContext(ctx)
}

func (b *Bot) consumeEvents(ctx context.Context) {
	for evt := range b.client.Events {
		switch evt.Type {
		case socketmode.EventTypeSlashCommand:
			cmd, ok := evt.Data.(slack.SlashCommand)
			if !ok {
				continue
			}
			// Ack within Slack's response window, before any work starts.
			b.client.Ack(*evt.Request)
			if cmd.Command != generateCommand {
				logger.Log.Warn().Str("command", cmd.Command).Msg("Ignoring unknown command")
				continue
			}
			go b.pipeline.Handle(ctx, cmd)
		case socketmode.EventTypeConnectionError:
			logger.Log.Error().Interface("event", evt.Data).Msg("Slack connection error")
		case socketmode.EventTypeConnected:
			logger.Log.Info().Msg("Connected to Slack")
		}
	}
}
