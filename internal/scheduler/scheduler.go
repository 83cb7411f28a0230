package scheduler

import (
	"context"
	"fmt"
	"time"
	"ulascansenturk/weather-stats/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs ingestion on a cron schedule. A run still in progress when
// the next tick fires is skipped.
type Scheduler struct {
	cron      *cron.Cron
	ingestion service.IngestionService
	timeout   time.Duration
}

func New(ingestion service.IngestionService, schedule string, timeout time.Duration) (*Scheduler, error) {
	logger := cronLogger{}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{
		cron:      c,
		ingestion: ingestion,
		timeout:   timeout,
	}

	if _, err := c.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid ingest schedule %q: %w", schedule, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Time("next_run", s.cron.Entries()[0].Next).Msg("ingestion scheduler started")
}

// Stop prevents further runs and waits for a running one to finish or for
// ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	written, err := s.ingestion.IngestAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("scheduled ingestion failed")
		return
	}
	log.Info().Int64("days_written", written).Msg("scheduled ingestion finished")
}

// cronLogger routes cron's own logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
