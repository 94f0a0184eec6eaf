package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apresai/roastbot/internal/analytics"
	"github.com/apresai/roastbot/internal/keystore"
	"github.com/apresai/roastbot/internal/observability"
	"github.com/apresai/roastbot/internal/offline"
	"github.com/apresai/roastbot/internal/persona"
	"github.com/apresai/roastbot/internal/prompt"
	"github.com/apresai/roastbot/internal/provider"
	"github.com/apresai/roastbot/internal/roast"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "roastbot",
	Short: "Personalized multi-provider roast chat",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("roastbot %s\n", Version)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive roast session",
	RunE:  runChat,
}

var roastCmd = &cobra.Command{
	Use:   "roast [message]",
	Short: "Generate a single roast reply and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOneShot,
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available personas and intensities",
	Run:   runPersonas,
}

var (
	flagPersona      string
	flagIntensity    string
	flagProfanity    bool
	flagOffline      bool
	flagVerbose      bool
	flagSecretPrefix string
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(roastCmd)
	rootCmd.AddCommand(personasCmd)

	for _, cmd := range []*cobra.Command{rootCmd, chatCmd, roastCmd} {
		cmd.PersistentFlags().StringVarP(&flagPersona, "persona", "p", persona.KeySarcastic,
			"Roasting persona: "+strings.Join(persona.Keys(), ", "))
		cmd.PersistentFlags().StringVarP(&flagIntensity, "intensity", "i", string(persona.DefaultIntensity),
			"Roast severity: mild, medium, savage")
		cmd.PersistentFlags().BoolVar(&flagProfanity, "profanity", false,
			"Permit mild profanity at savage intensity")
		cmd.PersistentFlags().BoolVar(&flagOffline, "offline", false,
			"Skip network providers and use the built-in template engine")
		cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
			"Enable detailed logging")
		cmd.PersistentFlags().StringVar(&flagSecretPrefix, "secret-prefix", "",
			"AWS Secrets Manager prefix to fill missing API keys from (e.g. /roastbot/prod/)")
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// buildEngine validates the shared flags and constructs a session engine.
func buildEngine(ctx context.Context) (*roast.Engine, error) {
	logger := observability.InitLogger(flagVerbose)

	if _, err := persona.Lookup(flagPersona); err != nil {
		return nil, err
	}
	intensity, err := persona.ParseIntensity(flagIntensity)
	if err != nil {
		return nil, err
	}

	if flagSecretPrefix != "" {
		if err := keystore.FillFromSecretsManager(ctx, flagSecretPrefix, logger); err != nil {
			logger.Warn("failed to load secrets, falling back to env vars", "error", err)
		}
	}

	creds := keystore.Load()
	if flagOffline {
		creds = provider.Credentials{}
	}

	settings := prompt.Settings{
		Persona:        flagPersona,
		Intensity:      intensity,
		AllowProfanity: flagProfanity,
	}

	return roast.New(roast.Config{
		Settings:  settings,
		Chain:     provider.Chain(settings, creds, offline.NewEngine()),
		Analytics: analytics.NewSlogEmitter(logger),
		Logger:    logger,
	}), nil
}

func runOneShot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	engine, err := buildEngine(ctx)
	if err != nil {
		return err
	}

	reply, err := engine.GenerateReply(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func runPersonas(cmd *cobra.Command, args []string) {
	for _, p := range persona.All() {
		fmt.Printf("%-12s %s\n", p.Key, p.DisplayName)
		fmt.Printf("             traits: %s\n", strings.Join(p.Traits, ", "))
	}
	fmt.Printf("\nintensities: mild, medium, savage (default %s)\n", persona.DefaultIntensity)
}

func runChat(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine(cmd.Context())
	if err != nil {
		return err
	}
	return runChatSession(cmd.Context(), engine, os.Stdout)
}
