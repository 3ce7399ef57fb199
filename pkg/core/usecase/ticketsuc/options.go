// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ticketsuc

import (
	"errors"

	"github.com/momeni/parking/pkg/core/clock"
)

// Option is a functional option for the tickets use case.
type Option func(uc *UseCase) error

// WithClock option replaces the system clock which is used for the
// entry and exit times of tickets.
func WithClock(c clock.Clock) Option {
	return func(uc *UseCase) error {
		if c == nil {
			return errors.New("clock is nil")
		}
		if uc.clock != nil {
			return errors.New("clock is already configured")
		}
		uc.clock = c
		return nil
	}
}
