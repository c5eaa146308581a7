// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"

	"github.com/paneldir/paneldir/internal/directory"
)

// Draft defaults. A new draft starts unlimited (0) with a 30-day expiry.
const (
	DefaultTrafficLimitGB = 0
	DefaultExpireDays     = 30
)

// ErrDraftIncomplete is returned when a draft is submitted without the
// required username or password. The directory is never called in that case.
var ErrDraftIncomplete = errors.New("username and password are required")

// Draft is the in-progress state for a new account. It lives only for the
// duration of the creation dialog and is never persisted.
type Draft struct {
	Username       string
	Password       string
	Email          string
	TrafficLimitGB int
	ExpireDays     int
}

// NewDraft returns a draft with all fields at their defaults.
func NewDraft() Draft {
	return Draft{
		TrafficLimitGB: DefaultTrafficLimitGB,
		ExpireDays:     DefaultExpireDays,
	}
}

// Reset restores every field to its default.
func (d *Draft) Reset() {
	*d = NewDraft()
}

// Validate enforces the submission precondition: non-empty username and
// password. All other fields are free-form; the directory applies its own
// rules.
func (d Draft) Validate() error {
	if d.Username == "" || d.Password == "" {
		return ErrDraftIncomplete
	}
	return nil
}

// Request maps the draft onto the directory's creation request, field for
// field.
func (d Draft) Request() directory.NewAccount {
	return directory.NewAccount{
		Username:       d.Username,
		Password:       d.Password,
		Email:          d.Email,
		TrafficLimitGB: d.TrafficLimitGB,
		ExpireDays:     d.ExpireDays,
	}
}
