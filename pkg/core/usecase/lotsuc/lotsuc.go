// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotsuc contains the lots UseCase (lot registry) which
// provisions parking lots with all of their slots and reports them.
package lotsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/log"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/slotsuc"
)

// DefaultMaxCapacity is the maximum capacity of a lot unless it is
// configured by the WithMaxCapacity option.
const DefaultMaxCapacity = 10000

// UseCase represents the lot registry.
type UseCase struct {
	pool   repo.Pool
	lotsrp repo.Lots
	slots  *slotsuc.UseCase

	clock       clock.Clock
	maxCapacity int
}

// New instantiates a lots use case.
func New(
	p repo.Pool, l repo.Lots, s *slotsuc.UseCase, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, lotsrp: l, slots: s}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.clock == nil {
		uc.clock = clock.System{}
	}
	if uc.maxCapacity == 0 {
		uc.maxCapacity = DefaultMaxCapacity
	}
	return uc, nil
}

// CreateLot provisions a lot and its capacity slots atomically.
// Invalid arguments cause a BadRequest error wrapping the
// model.ErrInvalidLot error.
func (lots *UseCase) CreateLot(
	ctx context.Context,
	name string,
	capacity int,
	hourlyRate decimal.Decimal,
	gateCount int,
) (lot *model.Lot, err error) {
	lot = &model.Lot{
		ID:         uuid.New(),
		Name:       name,
		Capacity:   capacity,
		HourlyRate: hourlyRate,
		GateCount:  gateCount,
		CreatedAt:  lots.clock.Now(),
	}
	if err := lot.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if capacity > lots.maxCapacity {
		return nil, cerr.BadRequest(fmt.Errorf(
			"capacity=%d exceeds %d: %w",
			capacity, lots.maxCapacity, model.ErrInvalidLot,
		))
	}
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if err := lots.lotsrp.Tx(tx).Create(ctx, lot); err != nil {
				return err
			}
			_, err := lots.slots.Materialize(ctx, tx, lot.ID, capacity)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "parking lot is created",
		log.UUID("lot", lot.ID),
		slog.String("name", name),
		slog.Int("capacity", capacity),
	)
	return lot, nil
}

// GetLot returns the lotID lot.
func (lots *UseCase) GetLot(
	ctx context.Context, lotID uuid.UUID,
) (lot *model.Lot, err error) {
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		lot, err = lots.lotsrp.Conn(c).Get(ctx, lotID)
		return err
	})
	if err != nil {
		lot = nil
	}
	return
}

// ListLots returns all lots sorted by their names.
func (lots *UseCase) ListLots(
	ctx context.Context,
) (ll []model.Lot, err error) {
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ll, err = lots.lotsrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		ll = nil
	}
	return
}

// Occupancy returns the lotID lot and its slots occupancy summary.
func (lots *UseCase) Occupancy(
	ctx context.Context, lotID uuid.UUID,
) (lot *model.Lot, o *model.Occupancy, err error) {
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		lot, err = lots.lotsrp.Conn(c).Get(ctx, lotID)
		if err != nil {
			return err
		}
		o, err = lots.slots.Occupancy(ctx, c, lot)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return lot, o, nil
}

// Slots returns the slots of the lotID lot, sorted by their numbers.
// A NotFound error is returned if the lot does not exist.
func (lots *UseCase) Slots(
	ctx context.Context, lotID uuid.UUID,
) (slots []model.Slot, err error) {
	err = lots.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if _, err := lots.lotsrp.Conn(c).Get(ctx, lotID); err != nil {
			return err
		}
		slots, err = lots.slots.Slots(ctx, c, lotID)
		return err
	})
	if err != nil {
		slots = nil
	}
	return
}
