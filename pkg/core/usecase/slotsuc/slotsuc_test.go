// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package slotsuc_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/internal/test/sqlitedb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/slotsrp"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/slotsuc"
)

func TestSlotsLifecycle(t *testing.T) {
	ctx := context.Background()
	p := sqlitedb.NewProd(ctx, t)
	sp := slotsuc.New(slotsrp.New())
	lot := &model.Lot{
		ID:         uuid.New(),
		Name:       "north",
		Capacity:   3,
		HourlyRate: decimal.NewFromInt(5),
		GateCount:  1,
		CreatedAt:  time.Now(),
	}
	inTx := func(f func(ctx context.Context, tx repo.Tx) error) error {
		return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, f)
		})
	}
	err := inTx(func(ctx context.Context, tx repo.Tx) error {
		if err := lotsrp.New().Tx(tx).Create(ctx, lot); err != nil {
			return err
		}
		slots, err := sp.Materialize(ctx, tx, lot.ID, lot.Capacity)
		if err != nil {
			return err
		}
		for i, s := range slots {
			assert.Equal(t, i, s.Number)
			assert.True(t, s.Available)
		}
		return nil
	})
	require.NoError(t, err)

	var claimed *model.Slot
	err = inTx(func(ctx context.Context, tx repo.Tx) (err error) {
		claimed, err = sp.ClaimFreeSlot(ctx, tx, lot.ID)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 0, claimed.Number)
	assert.False(t, claimed.Available)

	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		o, err := sp.Occupancy(ctx, c, lot)
		if err != nil {
			return err
		}
		assert.Equal(t, model.Occupancy{
			LotID: lot.ID, Capacity: 3, Occupied: 1, Available: 2,
		}, *o)
		ss, err := sp.Slots(ctx, c, lot.ID)
		if err != nil {
			return err
		}
		require.Len(t, ss, 3)
		assert.False(t, ss[0].Available)
		assert.True(t, ss[1].Available)
		return nil
	})
	require.NoError(t, err)

	release := func(ctx context.Context, tx repo.Tx) error {
		_, err := sp.ReleaseSlot(ctx, tx, claimed.ID)
		return err
	}
	require.NoError(t, inTx(release))
	err = inTx(release)
	require.ErrorIs(t, err, model.ErrInvalidState, "double release")
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusInternalServerError, ce.HTTPStatusCode)
	assert.True(t, ce.Internal())
}

func TestClaimFromFullLot(t *testing.T) {
	ctx := context.Background()
	p := sqlitedb.NewProd(ctx, t)
	sp := slotsuc.New(slotsrp.New())
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := sp.ClaimFreeSlot(ctx, tx, uuid.New())
			return err
		})
	})
	require.ErrorIs(t, err, model.ErrNoAvailableSlot)
}
