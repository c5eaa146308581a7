// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"strings"
	"testing"

	"github.com/paneldir/paneldir/internal/directory"
	"github.com/paneldir/paneldir/internal/model"
)

func newTestCoordinator(dir *fakeDirectory, yes bool) (*Coordinator, *ListStore, *recordingNotifier, *answer) {
	store := NewListStore(dir)
	notifier := &recordingNotifier{}
	confirmer := &answer{yes: yes}
	return NewCoordinator(dir, store, confirmer, notifier), store, notifier, confirmer
}

func TestDialog_StateMachine(t *testing.T) {
	c, _, _, _ := newTestCoordinator(&fakeDirectory{}, true)

	if c.DialogOpen() {
		t.Fatal("dialog must start closed")
	}
	c.OpenDialog()
	if !c.DialogOpen() {
		t.Fatal("open action must open the dialog")
	}
	d := c.Draft()
	d.Username = "alice"
	c.SetDraft(d)
	c.CancelDialog()
	if c.DialogOpen() {
		t.Fatal("cancel must close the dialog")
	}
	if c.Draft() != NewDraft() {
		t.Fatalf("cancel must reset the draft, got %+v", c.Draft())
	}
}

func TestCreateAccount_Success(t *testing.T) {
	dir := &fakeDirectory{
		createResult: model.Account{ID: "7", Username: "alice", IsActive: true},
		listResults:  [][]model.Account{{{ID: "7", Username: "alice"}}},
	}
	c, store, notifier, _ := newTestCoordinator(dir, true)

	c.OpenDialog()
	c.SetDraft(Draft{Username: "alice", Password: "pw", TrafficLimitGB: 50, ExpireDays: 30})
	if err := c.CreateAccount(context.Background()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if len(dir.createCalls) != 1 {
		t.Fatalf("expected exactly one create call, got %d", len(dir.createCalls))
	}
	want := directory.NewAccount{Username: "alice", Password: "pw", TrafficLimitGB: 50, ExpireDays: 30}
	if dir.createCalls[0] != want {
		t.Fatalf("create call fields differ: got %+v want %+v", dir.createCalls[0], want)
	}
	if c.DialogOpen() {
		t.Fatal("dialog must close on success")
	}
	if c.Draft() != NewDraft() {
		t.Fatalf("draft must reset to defaults on success, got %+v", c.Draft())
	}
	if dir.listCalls != 1 {
		t.Fatalf("success must trigger exactly one reload, got %d", dir.listCalls)
	}
	if store.Len() != 1 {
		t.Fatalf("reload must refresh the snapshot, got %d accounts", store.Len())
	}
	if len(notifier.messages) != 1 || notifier.kinds[0] != NotifySuccess {
		t.Fatalf("expected one success notification, got %v", notifier.messages)
	}
}

func TestCreateAccount_FailurePreservesDialogAndDraft(t *testing.T) {
	dir := &fakeDirectory{
		createErr: &directory.Error{Status: 409, Detail: "username taken", Op: "create"},
	}
	c, _, notifier, _ := newTestCoordinator(dir, true)

	draft := Draft{Username: "alice", Password: "pw", TrafficLimitGB: 50, ExpireDays: 30}
	c.OpenDialog()
	c.SetDraft(draft)
	if err := c.CreateAccount(context.Background()); err == nil {
		t.Fatal("expected create to fail")
	}

	if !c.DialogOpen() {
		t.Fatal("dialog must stay open on failure")
	}
	if c.Draft() != draft {
		t.Fatalf("draft must be preserved exactly, got %+v want %+v", c.Draft(), draft)
	}
	if dir.listCalls != 0 {
		t.Fatalf("failed create must not reload, got %d loads", dir.listCalls)
	}
	if len(notifier.messages) != 1 || notifier.kinds[0] != NotifyError {
		t.Fatalf("expected one error notification, got %v", notifier.messages)
	}
	if !strings.Contains(notifier.messages[0], "username taken") {
		t.Fatalf("notification must carry the server detail, got %q", notifier.messages[0])
	}
}

func TestCreateAccount_GenericFallbackWithoutDetail(t *testing.T) {
	dir := &fakeDirectory{createErr: &directory.Error{Status: 500, Op: "create"}}
	c, _, notifier, _ := newTestCoordinator(dir, true)
	c.OpenDialog()
	c.SetDraft(Draft{Username: "alice", Password: "pw", ExpireDays: 30})
	_ = c.CreateAccount(context.Background())

	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], DefaultMessages().CreateFallback) {
		t.Fatalf("expected generic fallback message, got %v", notifier.messages)
	}
}

func TestCreateAccount_IncompleteDraftNeverCallsDirectory(t *testing.T) {
	dir := &fakeDirectory{}
	c, _, notifier, _ := newTestCoordinator(dir, true)
	c.OpenDialog()
	c.SetDraft(Draft{Username: "alice"}) // password missing

	if err := c.CreateAccount(context.Background()); err != ErrDraftIncomplete {
		t.Fatalf("expected ErrDraftIncomplete, got %v", err)
	}
	if len(dir.createCalls) != 0 {
		t.Fatal("invalid draft must not reach the directory")
	}
	if !c.DialogOpen() {
		t.Fatal("dialog must stay open after a rejected submission")
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("rejected submission is not a notification, got %v", notifier.messages)
	}
}

func TestCreateAccount_RequiresOpenDialog(t *testing.T) {
	dir := &fakeDirectory{}
	c, _, _, _ := newTestCoordinator(dir, true)
	if err := c.CreateAccount(context.Background()); err == nil {
		t.Fatal("create must be rejected while the dialog is closed")
	}
	if len(dir.createCalls) != 0 {
		t.Fatal("closed dialog must not reach the directory")
	}
}

func TestDeleteAccount_DeclinedIsSilentNoOp(t *testing.T) {
	dir := &fakeDirectory{listResults: [][]model.Account{{{ID: "42", Username: "alice"}}}}
	c, store, notifier, confirmer := newTestCoordinator(dir, false)
	store.Load(context.Background())
	before := store.Snapshot()
	dir.listCalls = 0

	if err := c.DeleteAccount(context.Background(), "42"); err != nil {
		t.Fatalf("declined delete must not error: %v", err)
	}
	if confirmer.calls != 1 || confirmer.prompt != DeleteConfirmPrompt {
		t.Fatalf("expected one confirmation with the fixed prompt, got %d %q", confirmer.calls, confirmer.prompt)
	}
	if len(dir.deleteCalls) != 0 || dir.listCalls != 0 {
		t.Fatal("declined delete must issue zero directory calls")
	}
	after := store.Snapshot()
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatal("declined delete must leave the snapshot unchanged")
	}
	if len(notifier.messages) != 0 {
		t.Fatal("declining is not an error, no notification expected")
	}
}

func TestDeleteAccount_ConfirmedDeletesAndReloadsOnce(t *testing.T) {
	dir := &fakeDirectory{listResults: [][]model.Account{{}}}
	c, _, _, _ := newTestCoordinator(dir, true)

	if err := c.DeleteAccount(context.Background(), "42"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(dir.deleteCalls) != 1 || dir.deleteCalls[0] != "42" {
		t.Fatalf("expected exactly one delete of id 42, got %v", dir.deleteCalls)
	}
	if dir.listCalls != 1 {
		t.Fatalf("confirmed delete must trigger exactly one reload, got %d", dir.listCalls)
	}
}

func TestDeleteAccount_FailureNotifiesGenericAndKeepsList(t *testing.T) {
	dir := &fakeDirectory{
		listResults: [][]model.Account{{{ID: "42", Username: "alice"}}},
		deleteErr:   &directory.Error{Status: 502, Op: "delete"},
	}
	c, store, notifier, _ := newTestCoordinator(dir, true)
	store.Load(context.Background())
	dir.listCalls = 0

	if err := c.DeleteAccount(context.Background(), "42"); err == nil {
		t.Fatal("expected delete to fail")
	}
	if dir.listCalls != 0 {
		t.Fatal("failed delete must not reload")
	}
	if store.Len() != 1 {
		t.Fatal("failed delete must leave the list unchanged")
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != DefaultMessages().DeleteFailed {
		t.Fatalf("expected the generic delete failure message, got %v", notifier.messages)
	}
	if notifier.kinds[0] != NotifyError {
		t.Fatal("delete failure must notify as error")
	}
}
