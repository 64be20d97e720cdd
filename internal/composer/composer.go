package composer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

// Composer suggests short comment texts for a post using OpenAI. It is an
// optional assist for the comment action; when no API key is configured the
// composer stays disabled and every request reports that.
type Composer struct {
	client  *openai.Client
	model   string
	logger  *slog.Logger
	enabled bool
}

// Config holds the composer settings.
type Config struct {
	APIKey string
	Model  string
}

const systemPrompt = "You write short, natural social-media comments. Respond with the comment text only, no quotes or commentary."

// New creates a Composer. An empty API key yields a disabled composer.
func New(cfg Config, logger *slog.Logger) *Composer {
	c := &Composer{
		model:  cfg.Model,
		logger: logger,
	}
	if cfg.APIKey == "" {
		logger.Info("comment composer disabled, no OpenAI API key configured")
		return c
	}

	c.client = openai.NewClient(cfg.APIKey)
	c.enabled = true
	return c
}

// Enabled reports whether suggestions can be generated.
func (c *Composer) Enabled() bool {
	return c.enabled
}

// Suggest generates a comment for the described post. tone is optional.
func (c *Composer) Suggest(ctx context.Context, postDescription, tone string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("comment composer is not configured")
	}
	if strings.TrimSpace(postDescription) == "" {
		return "", fmt.Errorf("post description is required")
	}

	prompt := fmt.Sprintf("Write one comment (max 120 characters) for this post:\n\n%s", postDescription)
	if tone != "" {
		prompt += fmt.Sprintf("\n\nTone: %s", tone)
	}

	apiCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(apiCtx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.8,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate comment: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	comment := strings.TrimSpace(resp.Choices[0].Message.Content)
	comment = strings.Trim(comment, `"`)
	if comment == "" {
		return "", fmt.Errorf("model returned empty comment text")
	}

	c.logger.Info("comment suggestion generated", "length", len(comment))
	return comment, nil
}
