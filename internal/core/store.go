// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"sync"

	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/logging"
	"github.com/paneldir/paneldir/internal/model"
)

// ListStore holds the last-known snapshot of directory accounts and a
// loading flag. Every successful mutation triggers a wholesale reload; there
// is no field-level patching of the snapshot. When reloads race, whichever
// response lands last wins.
type ListStore struct {
	mu       sync.Mutex
	client   directory.Client
	snapshot []model.Account
	loading  bool
}

// NewListStore creates an empty store backed by the given directory client.
func NewListStore(client directory.Client) *ListStore {
	return &ListStore{client: client}
}

// Load fetches the account collection and replaces the snapshot atomically.
// A failed load keeps the existing snapshot and is only reported to the log;
// the view shows stale-or-empty data and stays interactive.
func (s *ListStore) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	accounts, err := s.client.ListAccounts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		logging.Errorf("failed to load accounts: %v", err)
		return
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	s.snapshot = accounts
}

// Snapshot returns a copy of the current account list.
func (s *ListStore) Snapshot() []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Account, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Len returns the size of the current snapshot.
func (s *ListStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshot)
}

// Loading reports whether a load is in flight.
func (s *ListStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// ShowLoadingIndicator reports whether the view should render its full-page
// loading state: only while a load is in flight and nothing has ever been
// loaded. A refresh after a successful first load never re-shows it.
func (s *ListStore) ShowLoadingIndicator() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading && len(s.snapshot) == 0
}
