package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/roastbot/internal/prompt"
)

func testBundle() prompt.Bundle {
	return prompt.Bundle{
		System:           "be rude",
		ContextNarrative: "nothing known",
		Messages:         []prompt.Message{{Role: prompt.RoleUser, Content: "roast me"}},
	}
}

func TestCustomOpenAIShape(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "Bearer sekret", r.Header.Get("Authorization"))
		assert.Equal(t, "yes", r.Header.Get("X-Custom"))
		w.Write([]byte(`{"choices":[{"message":{"content":"your wifi called, it wants a better user"}}]}`))
	}))
	defer srv.Close()

	adapter := NewCustom(CustomConfig{
		Endpoint:    srv.URL,
		Model:       "local-llm",
		BearerToken: "sekret",
		Headers:     map[string]string{"X-Custom": "yes"},
	})

	out, err := adapter.Generate(context.Background(), testBundle())
	require.NoError(t, err)
	assert.Equal(t, "your wifi called, it wants a better user", out)

	assert.Equal(t, "local-llm", captured["model"])
	msgs, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, msgs)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Contains(t, first["content"], "be rude")
	assert.Contains(t, first["content"], "nothing known")
}

func TestCustomShapePromptFieldAndExtras(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"output":{"text":"a reply long enough to pass"}}`))
	}))
	defer srv.Close()

	adapter := NewCustom(CustomConfig{
		Endpoint:     srv.URL,
		Shape:        ShapeCustom,
		PromptField:  "query",
		Extra:        map[string]any{"stream": false},
		ResponsePath: "output.text",
	})

	out, err := adapter.Generate(context.Background(), testBundle())
	require.NoError(t, err)
	assert.Equal(t, "a reply long enough to pass", out)

	assert.Contains(t, captured["query"], "User: roast me")
	assert.Equal(t, false, captured["stream"])
}

func TestCustomStatusTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrUnavailable},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		adapter := NewCustom(CustomConfig{Endpoint: srv.URL})

		_, err := adapter.Generate(context.Background(), testBundle())
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		srv.Close()
	}
}

func TestCustomShortResponseIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	adapter := NewCustom(CustomConfig{Endpoint: srv.URL})
	_, err := adapter.Generate(context.Background(), testBundle())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCustomUnreachableEndpoint(t *testing.T) {
	adapter := NewCustom(CustomConfig{Endpoint: "http://127.0.0.1:1"})
	_, err := adapter.Generate(context.Background(), testBundle())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCustomHuggingFaceShapeDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "inputs")
		assert.Contains(t, body, "parameters")
		w.Write([]byte(`[{"generated_text":"an adequately cutting reply"}]`))
	}))
	defer srv.Close()

	adapter := NewCustom(CustomConfig{Endpoint: srv.URL, Shape: ShapeHuggingFace})
	out, err := adapter.Generate(context.Background(), testBundle())
	require.NoError(t, err)
	assert.Equal(t, "an adequately cutting reply", out)
}
