// Package keystore resolves provider credentials. Environment variables
// are the source of truth; when a secret prefix is configured, AWS
// Secrets Manager fills in anything the environment is missing.
package keystore

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/apresai/roastbot/internal/provider"
)

// Environment variable names, one per backend.
const (
	EnvCohere      = "COHERE_API_KEY"
	EnvGemini      = "GEMINI_API_KEY"
	EnvOpenAI      = "OPENAI_API_KEY"
	EnvAnthropic   = "ANTHROPIC_API_KEY"
	EnvHuggingFace = "HUGGINGFACE_API_KEY"
)

var secretNames = []string{EnvCohere, EnvGemini, EnvOpenAI, EnvAnthropic, EnvHuggingFace}

// Load reads credentials from the environment. Absent keys stay empty,
// which disables that backend in the chain.
func Load() provider.Credentials {
	return provider.Credentials{
		Cohere:      os.Getenv(EnvCohere),
		Gemini:      os.Getenv(EnvGemini),
		OpenAI:      os.Getenv(EnvOpenAI),
		Anthropic:   os.Getenv(EnvAnthropic),
		HuggingFace: os.Getenv(EnvHuggingFace),
	}
}

// FillFromSecretsManager fetches any credential not already set in the
// environment from Secrets Manager under prefix (e.g. "/roastbot/prod/")
// and exports it as an env var, so a later Load sees it. Missing secrets
// are logged and skipped, never fatal; the template engine covers the
// no-credentials case.
func FillFromSecretsManager(ctx context.Context, prefix string, logger *slog.Logger) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	client := secretsmanager.NewFromConfig(awsCfg)

	for _, envVar := range secretNames {
		if os.Getenv(envVar) != "" {
			continue
		}
		secretID := prefix + envVar
		result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(secretID),
		})
		if err != nil {
			logger.Info("secret not found", "secret_id", secretID, "error", err)
			continue
		}
		if result.SecretString != nil {
			os.Setenv(envVar, *result.SecretString)
			logger.Info("loaded secret", "secret_id", secretID)
		}
	}
	return nil
}
