// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package appuc contains the application UseCase which allows the
// application to be reloaded based on a fresh configuration file and
// maintains and provides visible settings and use case objects (with
// atomic replacement support) so they may be used by the resources
// packages.
package appuc

import (
	"fmt"
	"sync"

	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/lotsuc"
	"github.com/momeni/parking/pkg/core/usecase/parkinguc"
	"github.com/momeni/parking/pkg/core/usecase/vehiclesuc"
)

// Repos contains all repository instances which are required by the
// supported use cases.
type Repos struct {
	Lots     repo.Lots
	Slots    repo.Slots
	Tickets  repo.Tickets
	Vehicles repo.Vehicles
}

// UseCase represents an application use case. It holds a database
// connection pool and all repository instances which are required by
// other supported use cases. Therefore, it can pass them to a use case
// builder object (which is realized by the effective Config instance)
// in order to create supported use case objects during a Reload.
type UseCase struct {
	pool     repo.Pool
	repos    Repos
	observer parkinguc.Observer
	clock    clock.Clock

	// mutex serializes the Reload calls, so an older Builder may not
	// publish its use cases after a newer one.
	mutex sync.Mutex

	// rwlock is locked for writing by updateAll whenever the new state
	// including the visible settings and use case objects are prepared
	// and should be published atomically, while it is locked by all
	// getter methods for reading in order to access the published state.
	rwlock sync.RWMutex

	settings        *model.VisibleSettings // cached visible settings
	lotsUseCase     *lotsuc.UseCase
	vehiclesUseCase *vehiclesuc.UseCase
	parkingUseCase  *parkinguc.UseCase
}

// New instantiates an application use case object. The Reload method
// of this object should be called at least once, so it can create
// other supported use case objects, before their corresponding getter
// methods are invoked (otherwise, they may return nil).
func New(p repo.Pool, r Repos, opts ...Option) (*UseCase, error) {
	uc := &UseCase{
		pool:  p,
		repos: r,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.clock == nil {
		uc.clock = clock.System{}
	}
	return uc, nil
}

// Reload uses the `b` Builder instance for creation of fresh use case
// objects and then changes the visible settings and use case objects
// atomically to their fresh values. Other goroutines may keep using
// the old use case objects which they have fetched already.
func (app *UseCase) Reload(b Builder) error {
	app.mutex.Lock()
	defer app.mutex.Unlock()
	managed, err := app.newManagedUseCases(b)
	if err != nil {
		return fmt.Errorf("creating use cases: %w", err)
	}
	app.updateAll(b.VisibleSettings(), managed)
	return nil
}

// managedUseCases contains the use case objects which are created by a
// Builder and should be published together.
type managedUseCases struct {
	lotsUseCase     *lotsuc.UseCase
	vehiclesUseCase *vehiclesuc.UseCase
	parkingUseCase  *parkinguc.UseCase
}

func (app *UseCase) newManagedUseCases(
	b Builder,
) (managedUseCases, error) {
	var nilm managedUseCases
	r := app.repos
	slotsUseCase, err := b.NewSlotsUseCase(r.Slots)
	if err != nil {
		return nilm, fmt.Errorf("creating slots use case: %w", err)
	}
	lotsUseCase, err := b.NewLotsUseCase(
		app.pool, r.Lots, slotsUseCase, app.clock,
	)
	if err != nil {
		return nilm, fmt.Errorf("creating lots use case: %w", err)
	}
	vehiclesUseCase, err := b.NewVehiclesUseCase(
		app.pool, r.Vehicles, app.clock,
	)
	if err != nil {
		return nilm, fmt.Errorf("creating vehicles use case: %w", err)
	}
	ticketsUseCase, err := b.NewTicketsUseCase(
		app.pool, r.Lots, r.Vehicles, r.Tickets, slotsUseCase, app.clock,
	)
	if err != nil {
		return nilm, fmt.Errorf("creating tickets use case: %w", err)
	}
	parkingUseCase, err := b.NewParkingUseCase(
		ticketsUseCase, app.observer,
	)
	if err != nil {
		return nilm, fmt.Errorf("creating parking use case: %w", err)
	}
	return managedUseCases{
		lotsUseCase:     lotsUseCase,
		vehiclesUseCase: vehiclesUseCase,
		parkingUseCase:  parkingUseCase,
	}, nil
}
