// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesuc contains the vehicles UseCase which registers
// vehicles, so they may be parked later.
package vehiclesuc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
)

// ErrEmptySerialNumber indicates a vehicle registration request which
// has no serial number.
var ErrEmptySerialNumber = errors.New("serial number is empty")

// UseCase represents the vehicles use case.
type UseCase struct {
	pool       repo.Pool
	vehiclesrp repo.Vehicles
	clock      clock.Clock
}

// New instantiates a vehicles use case. A nil c uses the system clock.
func New(p repo.Pool, v repo.Vehicles, c clock.Clock) *UseCase {
	if c == nil {
		c = clock.System{}
	}
	return &UseCase{pool: p, vehiclesrp: v, clock: c}
}

// Register creates a vehicle with the given serial number and type.
func (vehicles *UseCase) Register(
	ctx context.Context, serialNumber string, vt model.VehicleType,
) (*model.Vehicle, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return nil, cerr.BadRequest(ErrEmptySerialNumber)
	}
	if err := vt.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	v := &model.Vehicle{
		ID:           uuid.New(),
		SerialNumber: serialNumber,
		Type:         vt,
		RegisteredAt: vehicles.clock.Now(),
	}
	err := vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return vehicles.vehiclesrp.Conn(c).Create(ctx, v)
	})
	if err != nil {
		return nil, fmt.Errorf("registering vehicle: %w", err)
	}
	return v, nil
}

// Get returns the vehicleID vehicle.
func (vehicles *UseCase) Get(
	ctx context.Context, vehicleID uuid.UUID,
) (v *model.Vehicle, err error) {
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, err = vehicles.vehiclesrp.Conn(c).Get(ctx, vehicleID)
		return err
	})
	if err != nil {
		v = nil
	}
	return
}

// List returns all registered vehicles.
func (vehicles *UseCase) List(
	ctx context.Context,
) (vv []model.Vehicle, err error) {
	err = vehicles.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		vv, err = vehicles.vehiclesrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		vv = nil
	}
	return
}
