// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"sync"

	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/model"
)

// fakeDir is a deterministic in-process directory backend for view tests.
type fakeDir struct {
	mu          sync.Mutex
	accounts    []model.Account
	listErr     error
	createErr   error
	deleteErr   error
	createCalls []directory.NewAccount
	deleteCalls []string
}

func (f *fakeDir) ListAccounts(ctx context.Context) ([]model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Account, len(f.accounts))
	copy(out, f.accounts)
	return out, nil
}

func (f *fakeDir) CreateAccount(ctx context.Context, req directory.NewAccount) (model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, req)
	if f.createErr != nil {
		return model.Account{}, f.createErr
	}
	acc := model.Account{ID: "new", Username: req.Username, IsActive: true}
	f.accounts = append(f.accounts, acc)
	return acc, nil
}

func (f *fakeDir) DeleteAccount(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.accounts[:0]
	for _, a := range f.accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.accounts = kept
	return nil
}

func (f *fakeDir) deletes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deleteCalls))
	copy(out, f.deleteCalls)
	return out
}
