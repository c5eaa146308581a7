// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/logging"
)

// DeleteConfirmPrompt is the fixed question put to the confirmation
// collaborator before any delete. UIs may localize their rendering of the
// dialog but the coordinator always asks with this prompt.
const DeleteConfirmPrompt = "Are you sure you want to delete this user?"

// Messages are the notification templates the coordinator emits. UIs
// override them with localized strings; tests usually keep the defaults.
type Messages struct {
	CreateSuccess  string // fmt template, receives the username
	CreateFallback string // used when the server sent no detail
	CreateFailed   string // fmt template, receives the failure text
	DeleteFailed   string
}

// DefaultMessages returns the English notification templates.
func DefaultMessages() Messages {
	return Messages{
		CreateSuccess:  "Account %s created",
		CreateFallback: "request failed",
		CreateFailed:   "Failed to create account: %s",
		DeleteFailed:   "Failed to delete account",
	}
}

// Coordinator sequences the user-triggered operations of the account view.
// It owns the creation dialog state and the draft, calls the directory, and
// refreshes the list store after every successful mutation. It never mutates
// the list optimistically.
type Coordinator struct {
	client  directory.Client
	store   *ListStore
	confirm Confirmer
	notify  Notifier
	msgs    Messages

	mu         sync.Mutex
	dialogOpen bool
	draft      Draft
}

// NewCoordinator wires a coordinator to its collaborators.
func NewCoordinator(client directory.Client, store *ListStore, confirm Confirmer, notify Notifier) *Coordinator {
	return &Coordinator{
		client:  client,
		store:   store,
		confirm: confirm,
		notify:  notify,
		msgs:    DefaultMessages(),
		draft:   NewDraft(),
	}
}

// SetMessages replaces the notification templates.
func (c *Coordinator) SetMessages(m Messages) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = m
}

// OpenDialog opens the creation dialog with a fresh draft.
func (c *Coordinator) OpenDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialogOpen = true
	c.draft.Reset()
}

// CancelDialog closes the dialog and discards the draft.
func (c *Coordinator) CancelDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialogOpen = false
	c.draft.Reset()
}

// DialogOpen reports whether the creation dialog is open.
func (c *Coordinator) DialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialogOpen
}

// Draft returns the current draft values.
func (c *Coordinator) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the draft with the operator's edited values. Edits are
// field-at-a-time from the view's perspective; the coordinator just keeps
// the latest state.
func (c *Coordinator) SetDraft(d Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// CreateAccount submits the current draft. The dialog must be open and the
// draft complete, otherwise the directory is not called. On success the
// dialog closes, the draft resets, the list reloads and a success
// notification fires. On failure the dialog stays open with the draft
// untouched so the operator can correct and resubmit, and the error
// notification prefers the server's detail string.
func (c *Coordinator) CreateAccount(ctx context.Context) error {
	c.mu.Lock()
	if !c.dialogOpen {
		c.mu.Unlock()
		return fmt.Errorf("creation dialog is not open")
	}
	draft := c.draft
	msgs := c.msgs
	c.mu.Unlock()

	if err := draft.Validate(); err != nil {
		return err
	}

	acc, err := c.client.CreateAccount(ctx, draft.Request())
	if err != nil {
		detail := directory.ErrorDetail(err)
		if detail == "" {
			detail = msgs.CreateFallback
		}
		c.notify.Notify(fmt.Sprintf(msgs.CreateFailed, detail), NotifyError)
		return err
	}

	c.mu.Lock()
	c.dialogOpen = false
	c.draft.Reset()
	c.mu.Unlock()

	c.store.Load(ctx)
	c.notify.Notify(fmt.Sprintf(msgs.CreateSuccess, acc.Username), NotifySuccess)
	return nil
}

// DeleteAccount asks for confirmation and, only on approval, deletes the
// account and reloads the list. Declining is a silent no-op. A failed delete
// emits a generic error notification and changes nothing; the list was never
// mutated speculatively, so there is no rollback.
func (c *Coordinator) DeleteAccount(ctx context.Context, id string) error {
	if !c.confirm.Confirm(DeleteConfirmPrompt) {
		logging.Debugf("delete of %s declined", id)
		return nil
	}

	if err := c.client.DeleteAccount(ctx, id); err != nil {
		c.mu.Lock()
		msgs := c.msgs
		c.mu.Unlock()
		c.notify.Notify(msgs.DeleteFailed, NotifyError)
		return err
	}

	c.store.Load(ctx)
	return nil
}
