package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/core/ports"
)

const (
	defaultReapInterval = time.Hour
	defaultRetention    = 24 * time.Hour
)

// OTPReaper periodically purges passcodes that expired more than retention ago.
// Recently expired rows are kept so verification can still report expiry.
type OTPReaper struct {
	repo      ports.OTPRepository
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

func NewOTPReaper(repo ports.OTPRepository, interval, retention time.Duration, log zerolog.Logger) *OTPReaper {
	if interval <= 0 {
		interval = defaultReapInterval
	}
	if retention < 0 {
		retention = defaultRetention
	}
	return &OTPReaper{repo: repo, interval: interval, retention: retention, now: time.Now, log: log}
}

// Start launches the sweep loop. It stops when ctx is cancelled.
func (r *OTPReaper) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *OTPReaper) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil {
				r.log.Error().Err(err).Msg("otp sweep failed")
			}
		}
	}
}

// Sweep runs a single purge pass.
func (r *OTPReaper) Sweep(ctx context.Context) (int64, error) {
	cutoff := r.now().UTC().Add(-r.retention)
	n, err := r.repo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.log.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("expired otps purged")
	}
	return n, nil
}
