// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotsuc

import (
	"errors"
	"fmt"

	"github.com/momeni/parking/pkg/core/clock"
)

// Option is a functional option for the lots use case.
type Option func(uc *UseCase) error

// WithMaxCapacity option limits the capacity of the created lots.
func WithMaxCapacity(maxCapacity int) Option {
	return func(uc *UseCase) error {
		if maxCapacity <= 0 {
			return fmt.Errorf(
				"max capacity (%d) is not positive", maxCapacity,
			)
		}
		if uc.maxCapacity != 0 {
			return errors.New("max capacity is already configured")
		}
		uc.maxCapacity = maxCapacity
		return nil
	}
}

// WithClock option replaces the system clock which is used for the
// creation time of lots.
func WithClock(c clock.Clock) Option {
	return func(uc *UseCase) error {
		if c == nil {
			return errors.New("clock is nil")
		}
		uc.clock = c
		return nil
	}
}
