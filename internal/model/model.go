// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the account entity mirrored from the remote
// directory. The directory owns accounts; this process only ever holds a
// read-only snapshot of them.
package model

import "time"

// Account is one account record as reported by the directory service.
// TrafficLimitGB and ExpireAt are pointers because the directory may omit
// them: a missing limit means "unlimited" and a missing expiry means the
// account never expires.
type Account struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email,omitempty"`
	IsActive       bool       `json:"is_active"`
	TrafficUsedGB  float64    `json:"traffic_used_gb"`
	TrafficLimitGB *float64   `json:"traffic_limit_gb,omitempty"`
	ExpireAt       *time.Time `json:"expire_at,omitempty"`
}

// LimitPolicy decides how a numeric zero traffic limit is interpreted.
// The directory reports limits both as absent and as 0; the observed panel
// renders both as unlimited, but that conflation is ambiguous enough to keep
// behind a named policy.
type LimitPolicy int

const (
	// ZeroUnlimited treats a limit of 0 the same as an absent limit.
	ZeroUnlimited LimitPolicy = iota
	// ZeroBlocked treats 0 as a real quota; only an absent limit is unlimited.
	ZeroBlocked
)

// Unlimited reports whether the account has no effective traffic cap under
// the given policy.
func (a Account) Unlimited(p LimitPolicy) bool {
	if a.TrafficLimitGB == nil {
		return true
	}
	return p == ZeroUnlimited && *a.TrafficLimitGB == 0
}

// String returns the username, the identity operators recognize accounts by.
func (a Account) String() string {
	return a.Username
}
