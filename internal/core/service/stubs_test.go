package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

type memCustomerRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Customer
	err  error
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: map[string]*domain.Customer{}}
}

func (r *memCustomerRepo) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) List(context.Context) ([]*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.byID {
		if id != c.ID && existing.Email == c.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.PasswordHash = hash
	return nil
}

type memAdminRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{byID: map[string]*domain.Admin{}}
}

func (r *memAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAdminRepo) ListByRole(_ context.Context, role string) ([]*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Admin, 0)
	for _, a := range r.byID {
		if a.Role == role {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memAdminRepo) Create(_ context.Context, a *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *memAdminRepo) Update(_ context.Context, a *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *memAdminRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

type memAddressRepo struct {
	mu   sync.Mutex
	rows []*domain.Address
}

func (r *memAddressRepo) ListByCustomer(_ context.Context, customerID string) ([]*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Address, 0)
	for _, a := range r.rows {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAddressRepo) Create(_ context.Context, a *domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, a)
	return nil
}

type memOTPRepo struct {
	mu        sync.Mutex
	rows      []*domain.OneTimePasscode
	createErr error
}

func (r *memOTPRepo) Create(_ context.Context, otp *domain.OneTimePasscode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *otp
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memOTPRepo) FindFirst(_ context.Context, code string, owner domain.OwnerRef) (*domain.OneTimePasscode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.rows {
		if o.Code == code && o.Owner() == owner {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memOTPRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.rows {
		if o.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memOTPRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	var n int64
	for _, o := range r.rows {
		if o.ExpiresAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, o)
	}
	r.rows = kept
	return n, nil
}

func (r *memOTPRepo) all() []*domain.OneTimePasscode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.OneTimePasscode(nil), r.rows...)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, msg ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

var errBoom = errors.New("boom")
