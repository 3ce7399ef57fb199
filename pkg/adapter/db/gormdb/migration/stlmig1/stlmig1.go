// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package stlmig1 provides Settler type for database schema major
// version 1. It creates the parking tables for the dialect of its
// transaction and fills them with development or production suitable
// initial data.
package stlmig1

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/slotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/vehiclesrp"
	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
)

// These constants indicate the major, minor, and patch components of
// the database schema version which is created by this package.
const (
	Major = gormdb.Major
	Minor = gormdb.Minor
	Patch = gormdb.Patch
)

// Development seed data.
const (
	DevLots      = 5
	DevCapacity  = 10
	DevGateCount = 2
)

// DevHourlyRate is the hourly rate of the development lots.
var DevHourlyRate = decimal.NewFromInt(20)

// Settler struct creates and fills the major version 1 tables.
// Each instance wraps and uses a single transaction, but the caller
// is responsible to commit that transaction in order to finalize the
// initialization.
type Settler struct {
	tx *gormdb.Tx
}

// New creates a new Settler instance, wrapping the given `tx` database
// transaction which must be created by the gormdb package.
func New(tx repo.Tx) *Settler {
	return &Settler{
		tx: tx.(*gormdb.Tx),
	}
}

// InitDevSchema creates the tables and fills them with five lots,
// named lot0 to lot4, each with 10 slots, two gates, and an hourly rate
// of 20, in addition to two registered vehicles.
func (sm1 *Settler) InitDevSchema(ctx context.Context) error {
	if err := sm1.createTables(ctx); err != nil {
		return err
	}
	now := clock.System{}.Now()
	for i := 0; i < DevLots; i++ {
		lot := &model.Lot{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("lot%d", i),
			Capacity:   DevCapacity,
			HourlyRate: DevHourlyRate,
			GateCount:  DevGateCount,
			CreatedAt:  now,
		}
		if err := lotsrp.Create(ctx, sm1.tx, lot); err != nil {
			return fmt.Errorf("creating %s: %w", lot.Name, err)
		}
		_, err := slotsrp.CreateAll(ctx, sm1.tx, lot.ID, lot.Capacity)
		if err != nil {
			return fmt.Errorf("creating %s slots: %w", lot.Name, err)
		}
	}
	vehicles := []model.Vehicle{
		{SerialNumber: "11A111-11", Type: model.VehicleTypeCar},
		{SerialNumber: "22B222-22", Type: model.VehicleTypeBike},
	}
	for _, v := range vehicles {
		v.ID = uuid.New()
		v.RegisteredAt = now
		if err := vehiclesrp.Create(ctx, sm1.tx, &v); err != nil {
			return fmt.Errorf("creating vehicle %s: %w", v.SerialNumber, err)
		}
	}
	return nil
}

// InitProdSchema creates the tables, leaving them empty. Lots must be
// provisioned by the administrators.
func (sm1 *Settler) InitProdSchema(ctx context.Context) error {
	return sm1.createTables(ctx)
}

// MajorVersion returns the major semantic version of this Settler
// instance. It may be called with a nil instance too.
func (sm1 *Settler) MajorVersion() uint {
	return Major
}

func (sm1 *Settler) createTables(ctx context.Context) error {
	ddl := postgresDDL
	if sm1.tx.Dialect() == gormdb.SQLite {
		ddl = sqliteDDL
		for i := len(tables) - 1; i >= 0; i-- {
			_, err := sm1.tx.Exec(ctx, "DROP TABLE IF EXISTS "+tables[i])
			if err != nil {
				return fmt.Errorf("dropping %s: %w", tables[i], err)
			}
		}
	}
	for _, stmt := range ddl {
		if _, err := sm1.tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("running %q: %w", stmt, err)
		}
	}
	return nil
}
