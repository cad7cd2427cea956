package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"seo-web/internal/api"
	"seo-web/internal/config"
)

const appName = "seo-web"

// AppFlags holds the persistent flags shared by every command. Set flags
// override the configuration file, whose path comes from clibase's --config.
type AppFlags struct {
	BackendURL string
	TimeoutSec int
}

var (
	Flags  AppFlags
	cfg    *config.Config
	logger *slog.Logger
)

func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&Flags.BackendURL, "backend-url", "",
		"base URL of the analysis backend")
	rootCmd.PersistentFlags().IntVar(&Flags.TimeoutSec, "timeout", 0,
		"backend request timeout in seconds")
}

// initAppPreRunE runs after clibase's own pre-run, so clibase.Flags.Verbose
// is already set.
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig(clibase.Flags.ConfigFile)
	if err != nil {
		return err
	}

	// Only the server logs JSON; one-shot commands log text to stderr.
	logCfg := loaded.Log
	if cmd.Name() != serveCmd.Name() {
		logCfg.Format = "text"
	}

	cfg = loaded
	logger = config.NewLogger(os.Stderr, logCfg, clibase.Flags.Verbose)
	logger.Debug("Configuration loaded",
		slog.String("file", clibase.Flags.ConfigFile),
		slog.String("backend", cfg.Backend.BaseURL),
		slog.Duration("timeout", cfg.Backend.Timeout),
	)
	return nil
}

// loadConfig reads path (or the default file) and applies flag overrides.
func loadConfig(path string) (*config.Config, error) {
	loaded, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if Flags.BackendURL != "" {
		loaded.Backend.BaseURL = Flags.BackendURL
	}
	if Flags.TimeoutSec > 0 {
		loaded.Backend.Timeout = time.Duration(Flags.TimeoutSec) * time.Second
	}
	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, nil
}

func newAPIClient(opts ...api.Option) (*api.Client, error) {
	return api.New(cfg.Backend.BaseURL, api.NewFetcher(cfg.Backend.Timeout), logger, opts...)
}

// Execute builds the root command through clibase and runs it.
func Execute() {
	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		serveCmd,
		validateCmd,
		historyCmd,
		recommendationsCmd,
		chatCmd,
		versionCmd,
	)
}
