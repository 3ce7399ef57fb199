// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/momeni/parking/pkg/core/model"
)

type VehiclesConnQueryer interface {
	VehiclesQueryer
}

type VehiclesTxQueryer interface {
	VehiclesQueryer

	// Lock returns the vehicleID vehicle and locks its row until the
	// end of the transaction, so parking attempts of one vehicle are
	// serialized.
	Lock(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error)
}

type VehiclesQueryer interface {
	// Create inserts v. The v.ID must be filled by the caller.
	Create(ctx context.Context, v *model.Vehicle) error

	// Get returns the vehicleID vehicle or a NotFound error wrapping
	// the model.ErrVehicleNotFound.
	Get(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error)

	// List returns all vehicles, sorted by their registration time.
	List(ctx context.Context) ([]model.Vehicle, error)
}

type Vehicles interface {
	Conn(Conn) VehiclesConnQueryer
	Tx(Tx) VehiclesTxQueryer
}
