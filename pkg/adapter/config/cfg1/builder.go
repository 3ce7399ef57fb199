// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/lotsuc"
	"github.com/momeni/parking/pkg/core/usecase/parkinguc"
	"github.com/momeni/parking/pkg/core/usecase/slotsuc"
	"github.com/momeni/parking/pkg/core/usecase/ticketsuc"
	"github.com/momeni/parking/pkg/core/usecase/vehiclesuc"
)

// NewSlotsUseCase instantiates a new slots use case.
func (c *Config) NewSlotsUseCase(r repo.Slots) (*slotsuc.UseCase, error) {
	return slotsuc.New(r), nil
}

// NewLotsUseCase instantiates a new lots use case which limits the
// capacity of lots based on the Usecases.Lots settings.
func (c *Config) NewLotsUseCase(
	p repo.Pool, r repo.Lots, s *slotsuc.UseCase, clk clock.Clock,
) (*lotsuc.UseCase, error) {
	opts := []lotsuc.Option{lotsuc.WithClock(clk)}
	if mc := c.Usecases.Lots.MaxCapacity; mc != nil {
		opts = append(opts, lotsuc.WithMaxCapacity(*mc))
	}
	return lotsuc.New(p, r, s, opts...)
}

// NewVehiclesUseCase instantiates a new vehicles use case.
func (c *Config) NewVehiclesUseCase(
	p repo.Pool, r repo.Vehicles, clk clock.Clock,
) (*vehiclesuc.UseCase, error) {
	return vehiclesuc.New(p, r, clk), nil
}

// NewTicketsUseCase instantiates a new tickets use case.
func (c *Config) NewTicketsUseCase(
	p repo.Pool,
	l repo.Lots,
	v repo.Vehicles,
	t repo.Tickets,
	s *slotsuc.UseCase,
	clk clock.Clock,
) (*ticketsuc.UseCase, error) {
	return ticketsuc.New(p, l, v, t, s, ticketsuc.WithClock(clk))
}

// NewParkingUseCase instantiates a new parking use case which reports
// its outcomes to `o` if it is not nil.
func (c *Config) NewParkingUseCase(
	t *ticketsuc.UseCase, o parkinguc.Observer,
) (*parkinguc.UseCase, error) {
	opts := make([]parkinguc.Option, 0, 1)
	if o != nil {
		opts = append(opts, parkinguc.WithObserver(o))
	}
	return parkinguc.New(t, opts...)
}

// VisibleSettings creates and fills an instance of VisibleSettings
// with the settings which can be queried by end-users.
func (c *Config) VisibleSettings() *model.VisibleSettings {
	vs := &model.VisibleSettings{
		ImmutableSettings: &model.ImmutableSettings{
			// ValidateAndNormalize ensures that these are not nil.
			Logger:  *c.Gin.Logger,
			Metrics: *c.Gin.Metrics,
		},
	}
	if mc := c.Usecases.Lots.MaxCapacity; mc != nil {
		v := *mc
		vs.Lots.MaxCapacity = &v
	}
	return vs
}
