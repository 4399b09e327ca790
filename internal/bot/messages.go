package bot

import (
	"fmt"

	"github.com/slack-go/slack"
)

const (
	responseInChannel = "in_channel"
	responseEphemeral = "ephemeral"
)

func usageMessage() *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Text:         "Please provide a prompt for image generation. Usage: /generate [your prompt]",
		ResponseType: responseEphemeral,
	}
}

func processingMessage(prompt string) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Text:         fmt.Sprintf(":art: *Generating Bombo Image*\n\n*Prompt:* %s\n\n:hourglass_flowing_sand: Please wait while I create your custom Bombo sticker... This usually takes 30-60 seconds.\n\n*Status:* Processing...", prompt),
		ResponseType: responseInChannel,
	}
}

func successMessage(prompt, imageURL string) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Text: ":tada: *Bombo Image Generated and Stored Successfully!*",
		Attachments: []slack.Attachment{
			{
				Fallback: fmt.Sprintf("Bombo sticker: %s", prompt),
				ImageURL: imageURL,
			},
		},
		ResponseType:    responseInChannel,
		ReplaceOriginal: true,
	}
}

func failureMessage(prompt string, err error) *slack.WebhookMessage {
	return &slack.WebhookMessage{
		Text:            fmt.Sprintf(":x: *Image Generation Failed*\n\n*Prompt:* %s\n\n*Error:* %s\n\nPlease try again with a different prompt or contact support if the issue persists.", prompt, err.Error()),
		ResponseType:    responseInChannel,
		ReplaceOriginal: true,
	}
}
