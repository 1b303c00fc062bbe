package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/parlvotes/internal/fetch"
	"github.com/hyperifyio/parlvotes/internal/metrics"
	"github.com/hyperifyio/parlvotes/internal/notify"
	"github.com/hyperifyio/parlvotes/internal/processor"
	"github.com/hyperifyio/parlvotes/internal/tracker"
	"github.com/hyperifyio/parlvotes/internal/vote"
)

// Notifier delivers one formatted message. Failures are reported as false
// and never stop the run.
type Notifier interface {
	Send(ctx context.Context, text string) bool
}

type App struct {
	cfg       Config
	processor *processor.Processor
	notifier  Notifier
	tracker   tracker.Store
	metrics   *metrics.Run
	closers   []func() error
}

func New(_ context.Context, cfg Config) (*App, error) {
	cfg = cfg.WithDefaults()
	m := metrics.NewRun()

	httpClient := newHTTPClient(cfg.HTTPTimeout)
	p := &processor.Processor{
		ArchiveURL: cfg.ArchiveURL,
		HTTP: &fetch.Client{
			HTTPClient:      httpClient,
			UserAgent:       cfg.UserAgent,
			RedirectMaxHops: 5,
		},
		Metrics: m,
	}

	a := &App{
		cfg:       cfg,
		processor: p,
		notifier: &notify.Telegram{
			Token:  cfg.BotToken,
			ChatID: cfg.ChatID,
			APIURL: cfg.TelegramAPI,
			Client: resty.NewWithClient(httpClient),
		},
		metrics: m,
	}

	if cfg.TrackerRedisURL != "" {
		store, err := tracker.NewRedisStore(cfg.TrackerRedisURL, cfg.TrackerRedisKey)
		if err != nil {
			return nil, fmt.Errorf("init tracker: %w", err)
		}
		a.tracker = store
		a.closers = append(a.closers, store.Close)
	} else {
		a.tracker = &tracker.FileStore{Path: cfg.TrackerPath}
	}
	return a, nil
}

func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("close")
		}
	}
}

// Run publishes the votes of the latest session unless its date was already
// processed. The tracked date moves forward only when at least one vote
// was streamed.
func (a *App) Run(ctx context.Context) error {
	logger := log.With().Str("run_id", uuid.NewString()).Logger()
	logger.Info().Msg("starting the update process")
	defer a.pushMetrics(ctx, logger)

	// 1) Locate the latest session
	session, ok := a.processor.LocateLatest(ctx)
	if !ok || session.Date == "" {
		logger.Info().Msg("no new session found; exiting")
		return nil
	}

	// 2) Skip sessions that were already published
	if last, ok := a.tracker.Read(ctx); ok && last == session.Date {
		logger.Info().Str("date", session.Date).Msg("latest session already processed; skipping")
		return nil
	}

	// 3) Stream votes through the notifier
	stream, ok := a.processor.StreamSession(ctx, session)
	var (
		found   int
		records []vote.Record
	)
	if ok {
		for stream.Next(ctx) {
			rec := stream.Vote()
			found++
			logger.Info().Str("vote_id", orNA(rec.ID)).Msg("processing and sending notification")
			a.deliver(ctx, logger, notify.FormatMessage(&rec))
			if a.cfg.DigestDir != "" {
				records = append(records, rec)
			}
		}
	}
	if found == 0 {
		logger.Info().Str("date", session.Date).Msg("no votes streamed; tracked date unchanged")
		return nil
	}

	// 4) Record the session as processed
	if a.cfg.DryRun {
		logger.Info().Str("date", session.Date).Int("count", found).Msg("dry run: tracked date not updated")
	} else if err := a.tracker.Write(ctx, session.Date); err != nil {
		return fmt.Errorf("update tracked date: %w", err)
	}

	if a.cfg.DigestDir != "" {
		if path, err := writeDigest(a.cfg.DigestDir, session.Date, records); err != nil {
			logger.Warn().Err(err).Msg("digest pdf not written")
		} else {
			logger.Info().Str("out", path).Msg("wrote digest pdf")
		}
	}
	return nil
}

func (a *App) deliver(ctx context.Context, logger zerolog.Logger, msg string) {
	if a.cfg.DryRun {
		logger.Info().Str("message", msg).Msg("dry run: message not sent")
		return
	}
	a.metrics.Notified(a.notifier.Send(ctx, msg))
}

func (a *App) pushMetrics(ctx context.Context, logger zerolog.Logger) {
	if a.cfg.PushgatewayURL == "" {
		return
	}
	if err := a.metrics.Push(ctx, a.cfg.PushgatewayURL); err != nil {
		logger.Warn().Err(err).Msg("metrics push failed")
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
