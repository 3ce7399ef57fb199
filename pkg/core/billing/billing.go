// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package billing computes the parking charges. It is a pure package
// which performs no I/O and may be called concurrently.
//
// Every started hour is billed as a complete hour, so a stay of one
// second costs the hourly rate and a stay of 90 minutes costs twice
// the hourly rate. A stay of exactly zero duration costs nothing.
// Amounts are computed with exact decimal arithmetic and are rounded
// to two decimal places.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/core/model"
)

// Places is the number of fractional digits of computed amounts.
const Places = model.MoneyPlaces

// BillableHours returns the number of started hours in d. It returns
// zero for a zero d. The d duration must not be negative.
func BillableHours(d time.Duration) int64 {
	h := int64(d / time.Hour)
	if d%time.Hour != 0 {
		h++
	}
	return h
}

// ComputeCharge returns the charge of a stay from entry to exit with
// the hourlyRate. The model.ErrInvalidDuration error is returned if
// exit is before entry.
func ComputeCharge(
	entry, exit time.Time, hourlyRate decimal.Decimal,
) (decimal.Decimal, error) {
	d := exit.Sub(entry)
	if d < 0 {
		return decimal.Zero, fmt.Errorf(
			"entry=%s, exit=%s: %w",
			entry.Format(time.RFC3339Nano),
			exit.Format(time.RFC3339Nano),
			model.ErrInvalidDuration,
		)
	}
	hours := decimal.NewFromInt(BillableHours(d))
	return hours.Mul(hourlyRate).Round(Places), nil
}
