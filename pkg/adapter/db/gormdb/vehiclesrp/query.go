// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/model"
)

type gVehicle struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	SerialNumber string
	Type         string
	RegisteredAt time.Time
}

func (gv *gVehicle) TableName() string {
	return "vehicles"
}

func (gv *gVehicle) Model() (*model.Vehicle, error) {
	vt, err := model.ParseVehicleType(gv.Type)
	if err != nil {
		return nil, fmt.Errorf("vehicle %s type %q: %w", gv.ID, gv.Type, err)
	}
	return &model.Vehicle{
		ID:           gv.ID,
		SerialNumber: gv.SerialNumber,
		Type:         vt,
		RegisteredAt: gv.RegisteredAt.UTC(),
	}, nil
}

// Create inserts v.
func Create[Q gormdb.Queryer](
	ctx context.Context, q Q, v *model.Vehicle,
) error {
	if err := v.Type.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	gv := &gVehicle{
		ID:           v.ID,
		SerialNumber: v.SerialNumber,
		Type:         v.Type.String(),
		RegisteredAt: v.RegisteredAt,
	}
	if err := q.GORM(ctx).Create(gv).Error; err != nil {
		return fmt.Errorf("inserting vehicle: %w", err)
	}
	return nil
}

// Get queries the vehicleID vehicle.
func Get[Q gormdb.Queryer](
	ctx context.Context, q Q, vehicleID uuid.UUID,
) (*model.Vehicle, error) {
	return get(q.GORM(ctx), vehicleID)
}

// Lock queries the vehicleID vehicle and locks its row until the end
// of the transaction (for the PostgreSQL dialect).
func Lock[Q gormdb.Queryer](
	ctx context.Context, q Q, vehicleID uuid.UUID,
) (*model.Vehicle, error) {
	gdb := q.GORM(ctx)
	if q.Dialect() == gormdb.Postgres {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return get(gdb, vehicleID)
}

func get(gdb *gorm.DB, vehicleID uuid.UUID) (*model.Vehicle, error) {
	var gv gVehicle
	err := gdb.Where("id = ?", vehicleID).Take(&gv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(model.ErrVehicleNotFound)
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gv.Model()
}

// List queries all vehicles, sorted by their registration time.
func List[Q gormdb.Queryer](
	ctx context.Context, q Q,
) ([]model.Vehicle, error) {
	var gvs []gVehicle
	err := q.GORM(ctx).Order("registered_at").Order("id").Find(&gvs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	vehicles := make([]model.Vehicle, 0, len(gvs))
	for i := range gvs {
		v, err := gvs[i].Model()
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, nil
}
