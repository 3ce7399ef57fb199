// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotsuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/internal/test/fakeclock"
	"github.com/momeni/parking/internal/test/sqlitedb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/slotsrp"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/usecase/lotsuc"
	"github.com/momeni/parking/pkg/core/usecase/slotsuc"
)

func newLots(
	ctx context.Context, t *testing.T, opts ...lotsuc.Option,
) *lotsuc.UseCase {
	p := sqlitedb.NewProd(ctx, t)
	uc, err := lotsuc.New(
		p, lotsrp.New(), slotsuc.New(slotsrp.New()), opts...,
	)
	require.NoError(t, err)
	return uc
}

func TestCreateLot(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	lots := newLots(ctx, t, lotsuc.WithClock(fakeclock.New(now)))
	rate := decimal.RequireFromString("12.5")
	lot, err := lots.CreateLot(ctx, "central", 4, rate, 2)
	require.NoError(t, err)
	assert.Equal(t, "central", lot.Name)
	assert.True(t, rate.Equal(lot.HourlyRate))
	assert.True(t, now.Equal(lot.CreatedAt))

	got, o, err := lots.Occupancy(ctx, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, lot.ID, got.ID)
	assert.Equal(t, 4, got.Capacity)
	assert.True(t, rate.Equal(got.HourlyRate), got.HourlyRate)
	assert.Equal(t, model.Occupancy{
		LotID: lot.ID, Capacity: 4, Occupied: 0, Available: 4,
	}, *o)

	slots, err := lots.Slots(ctx, lot.ID)
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for i, s := range slots {
		assert.Equal(t, i, s.Number)
		assert.Equal(t, lot.ID, s.LotID)
		assert.True(t, s.Available)
	}

	_, err = lots.CreateLot(ctx, "central", 1, rate, 1)
	assert.ErrorIs(t, err, model.ErrInvalidLot)
	var ce *cerr.Error
	if assert.ErrorAs(t, err, &ce) {
		assert.Equal(t, http.StatusConflict, ce.HTTPStatusCode)
	}

	_, err = lots.CreateLot(ctx, "annex", 1, decimal.Zero, 1)
	require.NoError(t, err, "free lots are allowed")
	ll, err := lots.ListLots(ctx)
	require.NoError(t, err)
	require.Len(t, ll, 2)
	assert.Equal(t, "annex", ll[0].Name)
	assert.Equal(t, "central", ll[1].Name)
}

func TestCreateLotValidation(t *testing.T) {
	ctx := context.Background()
	lots := newLots(ctx, t, lotsuc.WithMaxCapacity(100))
	one := decimal.NewFromInt(1)
	for _, tc := range []struct {
		name     string
		lotName  string
		capacity int
		rate     decimal.Decimal
		gates    int
	}{
		{"empty name", "", 1, one, 1},
		{"zero capacity", "z", 0, one, 1},
		{"negative capacity", "n", -3, one, 1},
		{"negative rate", "r", 1, one.Neg(), 1},
		{"sub-cent rate", "c", 1, decimal.RequireFromString("1.005"), 1},
		{"no gate", "g", 1, one, 0},
		{"too large", "l", 101, one, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lots.CreateLot(
				ctx, tc.lotName, tc.capacity, tc.rate, tc.gates,
			)
			require.ErrorIs(t, err, model.ErrInvalidLot)
			var ce *cerr.Error
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, http.StatusBadRequest, ce.HTTPStatusCode)
		})
	}
	ll, err := lots.ListLots(ctx)
	require.NoError(t, err)
	assert.Empty(t, ll, "rejected lots must not be persisted")
}

func TestMissingLot(t *testing.T) {
	ctx := context.Background()
	lots := newLots(ctx, t)
	id := uuid.New()
	_, err := lots.GetLot(ctx, id)
	assert.ErrorIs(t, err, model.ErrLotNotFound)
	_, _, err = lots.Occupancy(ctx, id)
	assert.ErrorIs(t, err, model.ErrLotNotFound)
	_, err = lots.Slots(ctx, id)
	assert.ErrorIs(t, err, model.ErrLotNotFound)
}

func TestOptions(t *testing.T) {
	_, err := lotsuc.New(nil, nil, nil, lotsuc.WithMaxCapacity(0))
	assert.Error(t, err)
	_, err = lotsuc.New(
		nil, nil, nil,
		lotsuc.WithMaxCapacity(5), lotsuc.WithMaxCapacity(6),
	)
	assert.Error(t, err)
	_, err = lotsuc.New(nil, nil, nil, lotsuc.WithClock(nil))
	assert.Error(t, err)
}
