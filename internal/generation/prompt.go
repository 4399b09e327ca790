package generation

import "fmt"

// promptTemplate carries the hard constraints the backend must honor for
// every sticker. The wording is part of the tuned behavior; changing it
// changes output quality.
const promptTemplate = `Create a high-quality, cartoon-style sticker of a character named Bombo in a cozy, vintage postcard or illustrated comic look.
Bombo is a round-faced, joyful man with a big mustache, wearing a felt hat, buttoned shirt, vest, and suspenders. Don't make it look grainy but colorful and clear.
He should be placed in a scene that matches the theme: %s.
The image must:
- Have a transparent background, optimized for use as a sticker (Slack/Telegram/etc.)
- Be in high resolution with clear outlines
- Use warm and soft shading with comic-style proportions
- Contain no text unless explicitly instructed
- Keep the composition circular/oval or otherwise well-contained
The sticker should visually tell the story using expressive poses, props, and environment. Background elements should be minimal or symbolic, so the focus stays on Bombo.`

// buildPrompt embeds the user's scene theme into the sticker template.
func buildPrompt(theme string) string {
	return fmt.Sprintf(promptTemplate, theme)
}
