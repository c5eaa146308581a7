// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

// Package directory is the client capability for the remote account
// directory, the system of record for panel accounts. Everything above this
// package talks to the directory exclusively through the Client interface so
// the transport can be swapped for the in-memory implementation in tests and
// demo mode.
package directory

import (
	"context"
	"fmt"

	"github.com/paneldir/paneldir/internal/model"
)

// Client is the capability surface the console consumes: list, create and
// delete. The directory enforces quotas and computes expirations; none of
// that logic lives on this side.
type Client interface {
	// ListAccounts returns the full account collection. An empty slice is a
	// valid result, not an error.
	ListAccounts(ctx context.Context) ([]model.Account, error)

	// CreateAccount creates one account from the submitted draft fields and
	// returns the record the directory stored.
	CreateAccount(ctx context.Context, req NewAccount) (model.Account, error)

	// DeleteAccount removes the account with the given id.
	DeleteAccount(ctx context.Context, id string) error
}

// NewAccount carries the five creation fields exactly as drafted by the
// operator. TrafficLimitGB of 0 and ExpireDays are interpreted by the
// directory, not here.
type NewAccount struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email,omitempty"`
	TrafficLimitGB int    `json:"traffic_limit_gb"`
	ExpireDays     int    `json:"expire_days"`
}

// Error is a structured failure from the directory service. Detail carries
// the server's human-readable message when the response body had one.
type Error struct {
	Status int
	Detail string
	Op     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("directory %s: %s (status %d)", e.Op, e.Detail, e.Status)
	}
	return fmt.Sprintf("directory %s: status %d", e.Op, e.Status)
}

// ErrorDetail extracts the server-provided detail string from err, returning
// "" when err is not a directory error or carries no detail.
func ErrorDetail(err error) string {
	if derr, ok := err.(*Error); ok {
		return derr.Detail
	}
	return ""
}
