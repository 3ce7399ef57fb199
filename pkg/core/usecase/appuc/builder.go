// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

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

// Builder interface represents the expectations from the application
// use case builders. All use cases which can be instantiated by a
// configuration struct have one NewX method here which takes database
// connection pool and their repository packages dependencies. The last
// version of configuration struct must implement this interface, take
// repository packages and create use case objects based on its
// contained settings. The clock arguments are owned by the application
// use case, so they survive reloads like the observer.
type Builder interface {
	// NewSlotsUseCase creates a new slotsuc UseCase object having the
	// provided slots repository.
	NewSlotsUseCase(r repo.Slots) (*slotsuc.UseCase, error)

	// NewLotsUseCase creates a new lotsuc UseCase object which creates
	// the slots of its lots using the `s` slots use case.
	NewLotsUseCase(
		p repo.Pool, r repo.Lots, s *slotsuc.UseCase, c clock.Clock,
	) (*lotsuc.UseCase, error)

	// NewVehiclesUseCase creates a new vehiclesuc UseCase object.
	NewVehiclesUseCase(
		p repo.Pool, r repo.Vehicles, c clock.Clock,
	) (*vehiclesuc.UseCase, error)

	// NewTicketsUseCase creates a new ticketsuc UseCase object which
	// claims and releases slots using the `s` slots use case and takes
	// the entry and exit times from `c`.
	NewTicketsUseCase(
		p repo.Pool,
		l repo.Lots,
		v repo.Vehicles,
		t repo.Tickets,
		s *slotsuc.UseCase,
		c clock.Clock,
	) (*ticketsuc.UseCase, error)

	// NewParkingUseCase creates a new parkinguc UseCase object which
	// delegates to the `t` tickets use case and reports its outcomes
	// to the `o` observer. A nil `o` disables the reports.
	NewParkingUseCase(
		t *ticketsuc.UseCase, o parkinguc.Observer,
	) (*parkinguc.UseCase, error)

	// VisibleSettings returns the settings of this Builder which may
	// be reported to end-users.
	VisibleSettings() *model.VisibleSettings
}
