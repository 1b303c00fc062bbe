package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/parlvotes/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg        app.Config
		configPath string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:           "parlvotes",
		Short:         "Publish the latest plenary session's votes to a Telegram chat.",
		Version:       fmt.Sprintf("%s (%s)", app.BuildVersion, app.BuildCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg, configPath, envFile)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", os.Getenv("PARLVOTES_CONFIG"), "Path to YAML or JSON config file")
	f.StringVar(&envFile, "env-file", ".env", "Dotenv file to load before reading the environment (missing file is ignored)")
	f.StringVar(&cfg.ArchiveURL, "archive.url", "", "Voting archive index URL")
	f.StringVar(&cfg.UserAgent, "archive.ua", "", "User-Agent for archive requests")
	f.DurationVar(&cfg.HTTPTimeout, "archive.timeout", 0, "Per-request timeout (0 keeps the client default)")
	f.StringVar(&cfg.TelegramAPI, "telegram.api", "", "Telegram Bot API base URL")
	f.StringVar(&cfg.TrackerPath, "tracker.path", "", "File holding the last processed session date")
	f.StringVar(&cfg.TrackerRedisURL, "tracker.redis", "", "Redis URL; when set the date is kept in Redis instead of a file")
	f.StringVar(&cfg.TrackerRedisKey, "tracker.redisKey", "", "Redis key for the last processed session date")
	f.StringVar(&cfg.PushgatewayURL, "metrics.pushgateway", "", "Prometheus Pushgateway URL (optional)")
	f.StringVar(&cfg.DigestDir, "digest.dir", "", "Directory for a per-session PDF digest (optional)")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "Scrape and format without sending or updating the tracked date")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	return cmd
}

func run(ctx context.Context, cfg app.Config, configPath, envFile string) error {
	if strings.TrimSpace(envFile) != "" {
		if err := app.LoadEnvFiles(envFile); err != nil {
			log.Warn().Err(err).Str("file", envFile).Msg("env file not loaded")
		}
	}
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	cfg = cfg.WithDefaults()

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		if errors.Is(err, app.ErrMissingCredentials) {
			// Nothing can be delivered; leave the tracked date alone.
			log.Error().Msg("TELEGRAM_BOT_TOKEN and TARGET_CHAT_ID must be set; exiting")
			return nil
		}
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
