// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core holds the state-synchronization logic of the account view:
// the list store, the creation draft, and the coordinator that sequences
// load, create and delete against the directory. Nothing in here renders;
// every transition is constructible and testable without a UI.
package core

// NotifyKind classifies a user-facing notification.
type NotifyKind int

const (
	NotifySuccess NotifyKind = iota
	NotifyError
)

// Confirmer asks the operator to approve a destructive action. The CLI
// implements it with a y/N prompt, the TUI with its modal dialog, tests with
// a canned answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Notifier surfaces operation results to the operator.
type Notifier interface {
	Notify(message string, kind NotifyKind)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// NotifyFunc adapts a function to the Notifier interface.
type NotifyFunc func(message string, kind NotifyKind)

func (f NotifyFunc) Notify(message string, kind NotifyKind) { f(message, kind) }
