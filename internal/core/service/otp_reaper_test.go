package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdir/user-service/internal/core/domain"
)

func TestOTPReaper_SweepKeepsRecentlyExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &memOTPRepo{rows: []*domain.OneTimePasscode{
		{ID: "old", ExpiresAt: now.Add(-48 * time.Hour)},
		{ID: "recent", ExpiresAt: now.Add(-time.Hour)},
		{ID: "live", ExpiresAt: now.Add(time.Minute)},
	}}
	r := NewOTPReaper(repo, time.Hour, 24*time.Hour, zerolog.Nop())
	r.now = func() time.Time { return now }

	n, err := r.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 purged, got %d", n)
	}

	left := map[string]bool{}
	for _, o := range repo.all() {
		left[o.ID] = true
	}
	if left["old"] || !left["recent"] || !left["live"] {
		t.Fatalf("unexpected survivors %v", left)
	}
}

func TestOTPReaper_StartStopsOnCancel(t *testing.T) {
	repo := &memOTPRepo{rows: []*domain.OneTimePasscode{{ID: "old", ExpiresAt: time.Now().Add(-time.Hour)}}}
	r := NewOTPReaper(repo, 10*time.Millisecond, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for len(repo.all()) != 0 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("reaper did not sweep")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}
