package otpstore

import (
	"context"
	"fmt"

	"skillconnect/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger runs PurgeExpired on a cron schedule
type Purger struct {
	cron *cron.Cron
}

// StartPurge schedules s.PurgeExpired with spec (e.g. "@every 1m") and starts
// the scheduler goroutine. Call Stop to release it.
func StartPurge(s *Store, spec string) (*Purger, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if removed := s.PurgeExpired(); removed > 0 {
			logger.Debug("Expired OTP codes purged",
				zap.Int("removed", removed),
				zap.String("event", "otp_purged"),
			)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid OTP purge schedule %q: %w", spec, err)
	}

	c.Start()
	logger.Info("OTP purge job started", zap.String("schedule", spec))

	return &Purger{cron: c}, nil
}

// Stop halts the scheduler and waits for a running purge to finish or ctx to end
func (p *Purger) Stop(ctx context.Context) {
	done := p.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	logger.Info("OTP purge job stopped")
}
