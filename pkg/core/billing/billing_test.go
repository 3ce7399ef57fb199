// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package billing_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/pkg/core/billing"
	"github.com/momeni/parking/pkg/core/model"
)

var entry = time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

func TestBillableHours(t *testing.T) {
	cases := []struct {
		d     time.Duration
		hours int64
	}{
		{0, 0},
		{time.Nanosecond, 1},
		{time.Second, 1},
		{59 * time.Minute, 1},
		{time.Hour, 1},
		{time.Hour + time.Nanosecond, 2},
		{90 * time.Minute, 2},
		{2*time.Hour + 10*time.Minute, 3},
		{24 * time.Hour, 24},
	}
	for _, c := range cases {
		assert.Equal(t, c.hours, billing.BillableHours(c.d), "d=%s", c.d)
	}
}

func TestComputeCharge(t *testing.T) {
	rate := decimal.NewFromInt(20)
	cases := []struct {
		stay   time.Duration
		rate   decimal.Decimal
		charge string
	}{
		{0, rate, "0"},
		{time.Second, rate, "20"},
		{time.Hour, rate, "20"},
		{90 * time.Minute, rate, "40"},
		{2*time.Hour + 10*time.Minute, rate, "60"},
		{3 * time.Hour, decimal.RequireFromString("2.35"), "7.05"},
		{time.Minute, decimal.RequireFromString("0.10"), "0.1"},
		{5 * time.Hour, decimal.Zero, "0"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s@%s", c.stay, c.rate), func(t *testing.T) {
			amount, err := billing.ComputeCharge(
				entry, entry.Add(c.stay), c.rate,
			)
			require.NoError(t, err)
			expected := decimal.RequireFromString(c.charge)
			assert.True(
				t, expected.Equal(amount),
				"expected %s, got %s", expected, amount,
			)
		})
	}
}

func TestComputeChargeNegativeDuration(t *testing.T) {
	_, err := billing.ComputeCharge(
		entry, entry.Add(-time.Second), decimal.NewFromInt(20),
	)
	require.ErrorIs(t, err, model.ErrInvalidDuration)
}

func TestComputeChargeIsMonotonic(t *testing.T) {
	rate := decimal.RequireFromString("12.50")
	prev := decimal.Zero
	for d := time.Duration(0); d <= 5*time.Hour; d += 7 * time.Minute {
		amount, err := billing.ComputeCharge(entry, entry.Add(d), rate)
		require.NoError(t, err)
		assert.False(
			t, amount.LessThan(prev),
			"charge decreased at %s: %s < %s", d, amount, prev,
		)
		prev = amount
	}
}
