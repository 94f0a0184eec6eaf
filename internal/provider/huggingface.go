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

const hfEndpoint = "https://api-inference.huggingface.co/models/mistralai/Mistral-7B-Instruct-v0.3"

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// HuggingFace is the inference-API adapter. The hosted API returns an
// array of generations for a single-string input.
type HuggingFace struct {
	apiKey     string
	httpClient *http.Client
	limiter    *Throttle
}

func NewHuggingFace(apiKey string) *HuggingFace {
	return &HuggingFace{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    NewThrottle(),
	}
}

func (p *HuggingFace) Name() string { return "huggingface" }

func (p *HuggingFace) Generate(ctx context.Context, b prompt.Bundle) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := hfRequest{
		Inputs: flattenPrompt(b),
		Parameters: hfParameters{
			MaxNewTokens:   maxTokens,
			Temperature:    temperature,
			ReturnFullText: false,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfEndpoint, bytes.NewReader(bodyBytes))
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
		return "", fmt.Errorf("huggingface status %d: %s: %w", res.StatusCode, truncateBody(errBody), classifyStatus(res.StatusCode))
	}

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", ErrUnavailable)
	}

	var generations []hfGeneration
	if err := json.Unmarshal(respBody, &generations); err != nil {
		return "", fmt.Errorf("parse response: %w", ErrMalformed)
	}
	if len(generations) == 0 {
		return "", fmt.Errorf("response contained no generations: %w", ErrMalformed)
	}

	return finalize(generations[0].GeneratedText)
}
