// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"errors"

	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/usecase/parkinguc"
)

// Option is a functional option for the application use case.
type Option func(app *UseCase) error

// WithObserver option keeps `o` so it can be passed to all parking use
// case objects which are created during the subsequent reloads.
// Since `o` outlives each Builder, it may hold process-wide state such
// as registered metrics.
func WithObserver(o parkinguc.Observer) Option {
	return func(app *UseCase) error {
		if o == nil {
			return errors.New("observer is nil")
		}
		app.observer = o
		return nil
	}
}

// WithClock option replaces the system clock which is passed to the
// use cases of all subsequent reloads.
func WithClock(c clock.Clock) Option {
	return func(app *UseCase) error {
		if c == nil {
			return errors.New("clock is nil")
		}
		app.clock = c
		return nil
	}
}
