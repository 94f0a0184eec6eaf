package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/apresai/roastbot/internal/prompt"
)

// Request-shape templates for the custom adapter.
const (
	ShapeOpenAI      = "openai"
	ShapeCohere      = "cohere"
	ShapeHuggingFace = "huggingface"
	ShapeCustom      = "custom"
)

// CustomConfig describes a user-operated backend: where to POST, what the
// body should look like, and the dot-path to the generated text in the
// response JSON (e.g. "choices.0.message.content").
type CustomConfig struct {
	Endpoint     string
	Shape        string // one of the Shape constants; default ShapeOpenAI
	Model        string
	BearerToken  string
	Headers      map[string]string
	ResponsePath string
	// PromptField names the body field that receives the flattened prompt
	// when Shape is ShapeCustom. Defaults to "prompt".
	PromptField string
	// Extra fields merged into the body when Shape is ShapeCustom.
	Extra map[string]any
}

// Custom is the adapter for self-hosted or proxied models.
type Custom struct {
	cfg        CustomConfig
	httpClient *http.Client
	limiter    *Throttle
}

func NewCustom(cfg CustomConfig) *Custom {
	if cfg.Shape == "" {
		cfg.Shape = ShapeOpenAI
	}
	return &Custom{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    NewThrottle(),
	}
}

func (p *Custom) Name() string { return "custom" }

func (p *Custom) Generate(ctx context.Context, b prompt.Bundle) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := p.buildBody(b)
	if err != nil {
		return "", err
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.BearerToken)
	}
	for k, v := range p.cfg.Headers {
		req.Header.Set(k, v)
	}

	res, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", ErrUnavailable)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("custom backend status %d: %s: %w", res.StatusCode, truncateBody(errBody), classifyStatus(res.StatusCode))
	}

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", ErrUnavailable)
	}

	text, err := ExtractPath(respBody, p.responsePath())
	if err != nil {
		return "", err
	}
	return finalize(text)
}

func (p *Custom) buildBody(b prompt.Bundle) (map[string]any, error) {
	switch p.cfg.Shape {
	case ShapeOpenAI:
		msgs := []map[string]string{{"role": "system", "content": systemText(b)}}
		for _, m := range b.Messages {
			msgs = append(msgs, map[string]string{"role": m.Role, "content": m.Content})
		}
		return map[string]any{
			"model":       p.cfg.Model,
			"messages":    msgs,
			"max_tokens":  maxTokens,
			"temperature": temperature,
		}, nil
	case ShapeCohere:
		return map[string]any{
			"model":       p.cfg.Model,
			"prompt":      flattenPrompt(b),
			"max_tokens":  maxTokens,
			"temperature": temperature,
		}, nil
	case ShapeHuggingFace:
		return map[string]any{
			"inputs": flattenPrompt(b),
			"parameters": map[string]any{
				"max_new_tokens": maxTokens,
				"temperature":    temperature,
			},
		}, nil
	case ShapeCustom:
		field := p.cfg.PromptField
		if field == "" {
			field = "prompt"
		}
		body := map[string]any{field: flattenPrompt(b)}
		if p.cfg.Model != "" {
			body["model"] = p.cfg.Model
		}
		for k, v := range p.cfg.Extra {
			body[k] = v
		}
		return body, nil
	default:
		return nil, fmt.Errorf("unknown request shape %q", p.cfg.Shape)
	}
}

func (p *Custom) responsePath() string {
	if p.cfg.ResponsePath != "" {
		return p.cfg.ResponsePath
	}
	switch p.cfg.Shape {
	case ShapeCohere:
		return "generations.0.text"
	case ShapeHuggingFace:
		return "0.generated_text"
	default:
		return "choices.0.message.content"
	}
}

// ExtractPath walks a dot-path through decoded JSON. Numeric segments
// index arrays; everything else keys into objects. A path that misses, or
// that lands on a non-string, is a malformed response, never a partial
// success.
func ExtractPath(raw []byte, path string) (string, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse response: %w", ErrMalformed)
	}

	current := doc
	for _, seg := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return "", fmt.Errorf("path %q: missing key %q: %w", path, seg, ErrMalformed)
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return "", fmt.Errorf("path %q: bad array index %q: %w", path, seg, ErrMalformed)
			}
			current = node[idx]
		default:
			return "", fmt.Errorf("path %q: cannot descend into %T at %q: %w", path, current, seg, ErrMalformed)
		}
	}

	text, ok := current.(string)
	if !ok {
		return "", fmt.Errorf("path %q: result is %T, not string: %w", path, current, ErrMalformed)
	}
	return text, nil
}
