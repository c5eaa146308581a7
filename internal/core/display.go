// Copyright (c) 2026 Paneldir Authors
// Paneldir - account directory console for hosted panels
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"fmt"
	"strconv"

	"github.com/paneldir/paneldir/internal/model"
)

// Display derivations for account rows. These are recomputed per render and
// never stored.

// QuotaText renders "used / limit GB", with the infinity symbol standing in
// for the limit when the account is unlimited under the given policy.
func QuotaText(a model.Account, p model.LimitPolicy) string {
	limit := "∞"
	if !a.Unlimited(p) {
		limit = formatGB(*a.TrafficLimitGB)
	}
	return fmt.Sprintf("%s / %s GB", formatGB(a.TrafficUsedGB), limit)
}

// ExpiryText renders the expiration as a date in the given layout, or the
// never string (localized by the caller) when the account does not expire.
func ExpiryText(a model.Account, layout, never string) string {
	if a.ExpireAt == nil {
		return never
	}
	return a.ExpireAt.Format(layout)
}

// formatGB trims trailing zeros so 100 renders as "100" and 12.40 as "12.4".
func formatGB(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
