// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/internal/test/fakeclock"
	"github.com/momeni/parking/internal/test/sqlitedb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/vehiclesrp"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/usecase/vehiclesuc"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	p := sqlitedb.NewProd(ctx, t)
	c := fakeclock.New(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	vehicles := vehiclesuc.New(p, vehiclesrp.New(), c)

	car, err := vehicles.Register(ctx, " 11A111-11 ", model.VehicleTypeCar)
	require.NoError(t, err)
	assert.Equal(t, "11A111-11", car.SerialNumber)
	c.Advance(time.Minute)
	bike, err := vehicles.Register(ctx, "22B222-22", model.VehicleTypeBike)
	require.NoError(t, err)

	got, err := vehicles.Get(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VehicleTypeCar, got.Type)
	assert.True(t, car.RegisteredAt.Equal(got.RegisteredAt))

	vv, err := vehicles.List(ctx)
	require.NoError(t, err)
	require.Len(t, vv, 2)
	assert.Equal(t, car.ID, vv[0].ID)
	assert.Equal(t, bike.ID, vv[1].ID)

	_, err = vehicles.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrVehicleNotFound)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	p := sqlitedb.NewProd(ctx, t)
	vehicles := vehiclesuc.New(p, vehiclesrp.New(), nil)

	_, err := vehicles.Register(ctx, "  ", model.VehicleTypeCar)
	assert.ErrorIs(t, err, vehiclesuc.ErrEmptySerialNumber)
	_, err = vehicles.Register(ctx, "x", model.VehicleTypeInvalid)
	var vte model.VehicleTypeError
	assert.ErrorAs(t, err, &vte)
	_, err = vehicles.Register(ctx, "x", model.VehicleType(7))
	assert.ErrorAs(t, err, &vte)

	vv, err := vehicles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, vv)
}
