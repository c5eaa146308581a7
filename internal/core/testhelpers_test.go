// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/model"
)

// fakeDirectory is a scripted directory client that records every call.
type fakeDirectory struct {
	listResults [][]model.Account
	listErr     error
	listCalls   int

	createResult model.Account
	createErr    error
	createCalls  []directory.NewAccount

	deleteErr   error
	deleteCalls []string
}

var _ directory.Client = (*fakeDirectory)(nil)

func (f *fakeDirectory) ListAccounts(ctx context.Context) ([]model.Account, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.listResults) == 0 {
		return []model.Account{}, nil
	}
	res := f.listResults[0]
	if len(f.listResults) > 1 {
		f.listResults = f.listResults[1:]
	}
	return res, nil
}

func (f *fakeDirectory) CreateAccount(ctx context.Context, req directory.NewAccount) (model.Account, error) {
	f.createCalls = append(f.createCalls, req)
	if f.createErr != nil {
		return model.Account{}, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeDirectory) DeleteAccount(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

// recordingNotifier captures notifications in order.
type recordingNotifier struct {
	messages []string
	kinds    []NotifyKind
}

func (r *recordingNotifier) Notify(message string, kind NotifyKind) {
	r.messages = append(r.messages, message)
	r.kinds = append(r.kinds, kind)
}

// answer is a canned confirmer that records the prompt it was asked.
type answer struct {
	yes    bool
	prompt string
	calls  int
}

func (a *answer) Confirm(prompt string) bool {
	a.calls++
	a.prompt = prompt
	return a.yes
}
