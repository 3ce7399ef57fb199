// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/internal/test/sqlitedb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/slotsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/ticketsrp"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/vehiclesrp"
	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/appuc"
	"github.com/momeni/parking/pkg/core/usecase/lotsuc"
	"github.com/momeni/parking/pkg/core/usecase/parkinguc"
	"github.com/momeni/parking/pkg/core/usecase/slotsuc"
	"github.com/momeni/parking/pkg/core/usecase/ticketsuc"
	"github.com/momeni/parking/pkg/core/usecase/vehiclesuc"
)

type builder struct {
	maxCapacity int
	fail        bool
}

var _ appuc.Builder = builder{}

func (b builder) NewSlotsUseCase(r repo.Slots) (*slotsuc.UseCase, error) {
	return slotsuc.New(r), nil
}

func (b builder) NewLotsUseCase(
	p repo.Pool, r repo.Lots, s *slotsuc.UseCase, c clock.Clock,
) (*lotsuc.UseCase, error) {
	return lotsuc.New(
		p, r, s, lotsuc.WithMaxCapacity(b.maxCapacity), lotsuc.WithClock(c),
	)
}

func (b builder) NewVehiclesUseCase(
	p repo.Pool, r repo.Vehicles, c clock.Clock,
) (*vehiclesuc.UseCase, error) {
	return vehiclesuc.New(p, r, c), nil
}

func (b builder) NewTicketsUseCase(
	p repo.Pool,
	l repo.Lots,
	v repo.Vehicles,
	t repo.Tickets,
	s *slotsuc.UseCase,
	c clock.Clock,
) (*ticketsuc.UseCase, error) {
	if b.fail {
		return nil, errors.New("broken builder")
	}
	return ticketsuc.New(p, l, v, t, s, ticketsuc.WithClock(c))
}

func (b builder) NewParkingUseCase(
	t *ticketsuc.UseCase, o parkinguc.Observer,
) (*parkinguc.UseCase, error) {
	return parkinguc.New(t, parkinguc.WithObserver(o))
}

func (b builder) VisibleSettings() *model.VisibleSettings {
	return &model.VisibleSettings{
		Lots: model.LotsSettings{MaxCapacity: &b.maxCapacity},
		ImmutableSettings: &model.ImmutableSettings{
			Logger: true, Metrics: false,
		},
	}
}

type counter struct {
	parked int
}

func (c *counter) Parked(uuid.UUID)                                  { c.parked++ }
func (c *counter) Removed(uuid.UUID, time.Duration, decimal.Decimal) {}
func (c *counter) Rejected(string, error)                            {}

func TestReload(t *testing.T) {
	ctx := context.Background()
	p := sqlitedb.NewDev(ctx, t)
	obs := &counter{}
	app, err := appuc.New(p, appuc.Repos{
		Lots:     lotsrp.New(),
		Slots:    slotsrp.New(),
		Tickets:  ticketsrp.New(),
		Vehicles: vehiclesrp.New(),
	}, appuc.WithObserver(obs))
	require.NoError(t, err)
	require.Nil(t, app.LotsUseCase(), "no use case before Reload")

	require.NoError(t, app.Reload(builder{maxCapacity: 10}))
	assert.Equal(t, 10, *app.Settings().Lots.MaxCapacity)
	assert.True(t, app.Settings().Logger)
	lots := app.LotsUseCase()
	_, err = lots.CreateLot(ctx, "big", 20, decimal.NewFromInt(1), 1)
	assert.ErrorIs(t, err, model.ErrInvalidLot)

	err = app.Reload(builder{maxCapacity: 50, fail: true})
	assert.Error(t, err)
	assert.Equal(t, 10, *app.Settings().Lots.MaxCapacity, "kept")
	assert.Same(t, lots, app.LotsUseCase())

	require.NoError(t, app.Reload(builder{maxCapacity: 50}))
	assert.Equal(t, 50, *app.Settings().Lots.MaxCapacity)
	lot, err := app.LotsUseCase().CreateLot(
		ctx, "big", 20, decimal.NewFromInt(1), 1,
	)
	require.NoError(t, err)

	vv, err := app.VehiclesUseCase().List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, vv)
	_, err = app.ParkingUseCase().Park(ctx, vv[0].ID, lot.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, obs.parked, "observer survives reloads")
}

func TestWithNilObserver(t *testing.T) {
	_, err := appuc.New(nil, appuc.Repos{}, appuc.WithObserver(nil))
	assert.Error(t, err)
}
