package dispatcher

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RetrySweeper periodically redrives pending alert deliveries past their
// next_retry_at deadline, grounded in notification-service's CronScheduler
// wrapper around robfig/cron but driving SweepRetries instead of publishing
// NATS tick events.
type RetrySweeper struct {
	cron       *cron.Cron
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewRetrySweeper schedules a sweep every minute; the reference sweeper's
// interval is not pinned by the spec, and alert deliveries fail on the
// order of seconds to minutes, so a minute cadence matches the backoff
// floor (60s) without hammering the database between dispatch bursts.
func NewRetrySweeper(dispatcher *Dispatcher, logger *zap.Logger) *RetrySweeper {
	return &RetrySweeper{cron: cron.New(cron.WithSeconds()), dispatcher: dispatcher, logger: logger}
}

// Start registers the sweep job and starts the scheduler. Call Stop() to
// shut down gracefully.
func (s *RetrySweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc("0 * * * * *", func() {
		s.dispatcher.SweepRetries(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("alert retry sweeper started")
	return nil
}

// Stop waits for any in-flight sweep to finish before returning.
func (s *RetrySweeper) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("alert retry sweeper stopped")
}
