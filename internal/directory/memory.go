// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package directory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paneldir/paneldir/internal/model"
)

// MemoryClient is an in-process directory used by demo mode and tests. It
// applies the same uniqueness and validation rules the real directory
// enforces so the console behaves identically against it.
type MemoryClient struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	now      func() time.Time
}

var _ Client = (*MemoryClient)(nil)

// NewMemoryClient creates an empty in-memory directory.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		accounts: make(map[string]model.Account),
		now:      time.Now,
	}
}

// NewDemoClient creates an in-memory directory pre-seeded with a few
// plausible accounts for exploring the console offline.
func NewDemoClient() *MemoryClient {
	m := NewMemoryClient()
	limit := func(v float64) *float64 { return &v }
	in30 := m.now().AddDate(0, 0, 30)
	seed := []model.Account{
		{ID: uuid.NewString(), Username: "alice", Email: "alice@example.com", IsActive: true, TrafficUsedGB: 12.4, TrafficLimitGB: limit(100), ExpireAt: &in30},
		{ID: uuid.NewString(), Username: "bob", IsActive: false, TrafficUsedGB: 87.1, TrafficLimitGB: limit(80)},
		{ID: uuid.NewString(), Username: "mallory", IsActive: true, TrafficUsedGB: 3.0},
	}
	for _, a := range seed {
		m.accounts[a.ID] = a
	}
	return m
}

// ListAccounts returns all accounts ordered by username.
func (m *MemoryClient) ListAccounts(ctx context.Context) ([]model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// CreateAccount stores a new account, rejecting duplicate usernames the way
// the real directory does.
func (m *MemoryClient) CreateAccount(ctx context.Context, req NewAccount) (model.Account, error) {
	if err := ctx.Err(); err != nil {
		return model.Account{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.Username == "" || req.Password == "" {
		return model.Account{}, &Error{Status: http.StatusUnprocessableEntity, Detail: "username and password are required", Op: "create"}
	}
	for _, a := range m.accounts {
		if a.Username == req.Username {
			return model.Account{}, &Error{Status: http.StatusConflict, Detail: "username already exists", Op: "create"}
		}
	}
	acc := model.Account{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		IsActive: true,
	}
	if req.TrafficLimitGB > 0 {
		limit := float64(req.TrafficLimitGB)
		acc.TrafficLimitGB = &limit
	}
	if req.ExpireDays > 0 {
		exp := m.now().AddDate(0, 0, req.ExpireDays)
		acc.ExpireAt = &exp
	}
	m.accounts[acc.ID] = acc
	return acc, nil
}

// DeleteAccount removes the account with the given id.
func (m *MemoryClient) DeleteAccount(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return &Error{Status: http.StatusNotFound, Detail: "account not found", Op: "delete"}
	}
	delete(m.accounts, id)
	return nil
}
