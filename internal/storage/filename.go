package storage

import (
	"fmt"
	"strings"
	"time"
)

const maxPromptPrefix = 50

// GenerateFileName synthesizes the bucket key for a prompt. Two identical
// prompts in the same millisecond collide and resolve as last-write-wins.
func GenerateFileName(prompt string) string {
	return fileNameAt(prompt, time.Now())
}

func fileNameAt(prompt string, ts time.Time) string {
	return fmt.Sprintf("bombo-%s-%d.png", sanitizePrompt(prompt), ts.UnixMilli())
}

// sanitizePrompt maps every non-alphanumeric character to a hyphen and keeps
// at most the first 50 characters.
func sanitizePrompt(prompt string) string {
	var b strings.Builder
	b.Grow(len(prompt))
	for _, r := range prompt {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	s := b.String()
	if len(s) > maxPromptPrefix {
		s = s[:maxPromptPrefix]
	}
	return s
}
