package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv(EnvCohere, "co-key")
	t.Setenv(EnvOpenAI, "oa-key")
	t.Setenv(EnvGemini, "")
	t.Setenv(EnvAnthropic, "")
	t.Setenv(EnvHuggingFace, "")

	creds := Load()
	assert.Equal(t, "co-key", creds.Cohere)
	assert.Equal(t, "oa-key", creds.OpenAI)
	assert.Empty(t, creds.Gemini)
	assert.Empty(t, creds.Anthropic)
	assert.True(t, creds.HasRemote())
}

func TestLoadEmptyEnvironmentDisablesEverything(t *testing.T) {
	t.Setenv(EnvCohere, "")
	t.Setenv(EnvGemini, "")
	t.Setenv(EnvOpenAI, "")
	t.Setenv(EnvAnthropic, "")
	t.Setenv(EnvHuggingFace, "")

	assert.False(t, Load().HasRemote())
}
