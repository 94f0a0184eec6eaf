package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/apresai/roastbot/internal/prompt"
)

const claudeModel = "claude-haiku-4-5-20251001"

// Claude is the Anthropic messages adapter, the one backend reached
// through an official SDK rather than a hand-rolled wire format.
type Claude struct {
	client  anthropic.Client
	limiter *Throttle
}

func NewClaude(apiKey string) *Claude {
	return &Claude{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		limiter: NewThrottle(),
	}
}

func (p *Claude) Name() string { return "claude" }

func (p *Claude) Generate(ctx context.Context, b prompt.Bundle) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	msgs := make([]anthropic.MessageParam, 0, len(b.Messages))
	for _, m := range b.Messages {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == prompt.RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(claudeModel),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemText(b)},
		},
		Messages: msgs,
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			return "", fmt.Errorf("claude status %d: %w", apierr.StatusCode, classifyStatus(apierr.StatusCode))
		}
		return "", fmt.Errorf("claude request: %w", ErrUnavailable)
	}

	var parts []string
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}

	return finalize(strings.Join(parts, ""))
}
