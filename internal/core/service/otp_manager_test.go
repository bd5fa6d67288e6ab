package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/userdir/user-service/internal/core/domain"
)

func newTestOTPManager(repo *memOTPRepo, now time.Time) *OTPManager {
	m := NewOTPManager(repo, 15*time.Minute)
	m.now = func() time.Time { return now }
	return m
}

func TestGenerateOTPCode_Range(t *testing.T) {
	for i := 0; i < 2000; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		n, err := strconv.Atoi(code)
		if err != nil || len(code) != 4 || n < 1000 || n > 9999 {
			t.Fatalf("code %q out of range", code)
		}
	}
}

func TestOTPManager_IssueSetsExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &memOTPRepo{}
	m := newTestOTPManager(repo, now)
	m.generate = func() (string, error) { return "4321", nil }

	otp, err := m.Issue(context.Background(), domain.OwnerRef{Kind: domain.KindCustomer, ID: "c1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if otp.Code != "4321" || otp.ID == "" {
		t.Fatalf("unexpected otp %+v", otp)
	}
	if !otp.ExpiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", otp.ExpiresAt)
	}
	if len(repo.all()) != 1 {
		t.Fatalf("otp not persisted")
	}
}

func TestOTPManager_MultipleLiveCodes(t *testing.T) {
	now := time.Now()
	repo := &memOTPRepo{}
	m := newTestOTPManager(repo, now)
	owner := domain.OwnerRef{Kind: domain.KindCustomer, ID: "c1"}
	codes := []string{"1111", "2222"}
	i := 0
	m.generate = func() (string, error) { c := codes[i]; i++; return c, nil }

	for range codes {
		if _, err := m.Issue(context.Background(), owner); err != nil {
			t.Fatalf("issue: %v", err)
		}
	}
	for _, c := range codes {
		if _, err := m.Verify(context.Background(), owner, c); err != nil {
			t.Fatalf("verify %s: %v", c, err)
		}
	}
}

func TestOTPManager_ExpiredKeepsRow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	owner := domain.OwnerRef{Kind: domain.KindAdmin, ID: "a1"}
	repo := &memOTPRepo{rows: []*domain.OneTimePasscode{{
		ID: "o1", Code: "1234", OwnerKind: owner.Kind, OwnerID: owner.ID, ExpiresAt: now.Add(-time.Second),
	}}}
	m := newTestOTPManager(repo, now)

	_, err := m.Verify(context.Background(), owner, "1234")
	assertKind(t, err, domain.UnauthorizedError, "OTP code has expired")

	if len(repo.all()) != 1 {
		t.Fatalf("expired row must not be deleted")
	}
}

func TestOTPManager_ExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	owner := domain.OwnerRef{Kind: domain.KindCustomer, ID: "c1"}
	repo := &memOTPRepo{rows: []*domain.OneTimePasscode{{
		ID: "o1", Code: "1234", OwnerKind: owner.Kind, OwnerID: owner.ID, ExpiresAt: now,
	}}}
	m := newTestOTPManager(repo, now)

	if _, err := m.Verify(context.Background(), owner, "1234"); err != nil {
		t.Fatalf("code is valid up to and including expiresAt: %v", err)
	}
}

func TestOTPManager_SingleUse(t *testing.T) {
	now := time.Now()
	owner := domain.OwnerRef{Kind: domain.KindCustomer, ID: "c1"}
	repo := &memOTPRepo{rows: []*domain.OneTimePasscode{{
		ID: "o1", Code: "1234", OwnerKind: owner.Kind, OwnerID: owner.ID, ExpiresAt: now.Add(time.Minute),
	}}}
	m := newTestOTPManager(repo, now)

	otp, err := m.Verify(context.Background(), owner, "1234")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if otp.ID != "o1" {
		t.Fatalf("unexpected otp %+v", otp)
	}
	if len(repo.all()) != 0 {
		t.Fatalf("verified row must be deleted")
	}

	_, err = m.Verify(context.Background(), owner, "1234")
	assertKind(t, err, domain.UnauthorizedError, "Invalid OTP code")
}

func TestOTPManager_WrongCode(t *testing.T) {
	m := newTestOTPManager(&memOTPRepo{}, time.Now())

	_, err := m.Verify(context.Background(), domain.OwnerRef{Kind: domain.KindCustomer, ID: "c1"}, "0000")
	assertKind(t, err, domain.UnauthorizedError, "Invalid OTP code")
}
