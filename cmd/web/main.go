package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/perf-tools/lightaudit/pkg/server"
	"github.com/perf-tools/lightaudit/pkg/services/config"
	"github.com/perf-tools/lightaudit/pkg/services/insight"
	"github.com/perf-tools/lightaudit/pkg/services/pagespeed"
	"github.com/perf-tools/lightaudit/pkg/services/triage"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the Lighthouse audit tool",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.lightauditcfg", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the credentials file (default is $HOME/.lightauditcfg)")
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", "",
		"Path to the optional settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var registry config.Registry
	if reg, err := config.NewRegistry(cfgPath); err == nil {
		registry = reg
		logger.Info().Msgf("Credentials file found at `%s` successfully loaded.", cfgPath)
	}

	credentials, err := config.ResolveCredentials(ctx, registry, config.DefaultProfile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
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
	auditor := triage.NewService(fetcher, generator)

	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = settings.Server.Host
	}
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = settings.Server.Port
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Auditor: auditor,
			Logger:  logger,
		},
	})

	return api.Start()
}
