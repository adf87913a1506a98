package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/perf-tools/lightaudit/pkg/runtime/terminal"
	"github.com/perf-tools/lightaudit/pkg/services/config"
	"github.com/perf-tools/lightaudit/pkg/services/insight"
	"github.com/perf-tools/lightaudit/pkg/services/pagespeed"
	"github.com/perf-tools/lightaudit/pkg/services/triage"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	var registry config.Registry
	if usr, err := user.Current(); err == nil {
		if reg, err := config.NewRegistry(filepath.Join(usr.HomeDir, ".lightauditcfg")); err == nil {
			registry = reg
		}
	}

	credentials, err := config.ResolveCredentials(ctx, registry, config.DefaultProfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings, err := config.LoadSettings("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fetcher := pagespeed.NewClient(pagespeed.Settings{
		APIKey:   credentials.PageSpeedAPIKey,
		Endpoint: settings.PageSpeed.Endpoint,
	})
	generator := insight.NewGenerator(insight.Settings{
		APIKey:      credentials.GroqAPIKey,
		Endpoint:    settings.Groq.Endpoint,
		Model:       settings.Groq.Model,
		Temperature: settings.Groq.Temperature,
		MaxTokens:   settings.Groq.MaxTokens,
	})

	cli := terminal.NewCLI(terminal.Options{
		Auditor: triage.NewService(fetcher, generator),
		Output:  os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
