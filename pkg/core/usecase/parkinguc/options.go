// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package parkinguc

import "errors"

// Option is a functional option for the parking use case.
type Option func(uc *UseCase) error

// WithObserver option registers o to be notified about the parking
// operations outcomes. A nil o is ignored.
func WithObserver(o Observer) Option {
	return func(uc *UseCase) error {
		if uc.observer != nil {
			return errors.New("observer is already configured")
		}
		uc.observer = o
		return nil
	}
}
