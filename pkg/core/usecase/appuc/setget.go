// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/usecase/lotsuc"
	"github.com/momeni/parking/pkg/core/usecase/parkinguc"
	"github.com/momeni/parking/pkg/core/usecase/vehiclesuc"
)

// Settings returns a copy of visible settings which are currently in
// effect. The effective settings and use case objects which are built
// based on them may be updated atomically, while they are exposed by a
// series of getter methods. The Reload method must be called before
// this (and other use case objects getter methods) may be called.
func (app *UseCase) Settings() model.VisibleSettings {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return *app.settings
}

// updateAll atomically updates the visible settings and all other use
// case objects which are built based on those settings. This method
// minimizes the scope which needs to take a writing lock (after
// instantiating all relevant use case objects).
func (app *UseCase) updateAll(
	vs *model.VisibleSettings, managed managedUseCases,
) {
	app.rwlock.Lock()
	defer app.rwlock.Unlock()
	app.settings = vs
	app.lotsUseCase = managed.lotsUseCase
	app.vehiclesUseCase = managed.vehiclesUseCase
	app.parkingUseCase = managed.parkingUseCase
}

// LotsUseCase returns the currently effective lots use case object.
func (app *UseCase) LotsUseCase() *lotsuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.lotsUseCase
}

// VehiclesUseCase returns the currently effective vehicles use case.
func (app *UseCase) VehiclesUseCase() *vehiclesuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.vehiclesUseCase
}

// ParkingUseCase returns the currently effective parking use case.
func (app *UseCase) ParkingUseCase() *parkinguc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.parkingUseCase
}
