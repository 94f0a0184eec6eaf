package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/apresai/roastbot/internal/prompt"
)

const (
	cohereEndpoint = "https://api.cohere.ai/v1/generate"
	cohereModel    = "command"
)

type cohereRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
}

// Cohere is the single-prompt generate adapter.
type Cohere struct {
	apiKey     string
	httpClient *http.Client
	limiter    *Throttle
}

func NewCohere(apiKey string) *Cohere {
	return &Cohere{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    NewThrottle(),
	}
}

func (p *Cohere) Name() string { return "cohere" }

func (p *Cohere) Generate(ctx context.Context, b prompt.Bundle) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := cohereRequest{
		Model:       cohereModel,
		Prompt:      flattenPrompt(b),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cohereEndpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	res, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", ErrUnavailable)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("cohere status %d: %s: %w", res.StatusCode, truncateBody(errBody), classifyStatus(res.StatusCode))
	}

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", ErrUnavailable)
	}

	var resp cohereResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", ErrMalformed)
	}
	if len(resp.Generations) == 0 {
		return "", fmt.Errorf("response contained no generations: %w", ErrMalformed)
	}

	return finalize(resp.Generations[0].Text)
}
