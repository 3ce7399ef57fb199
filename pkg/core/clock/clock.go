// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package clock abstracts the wall clock, so use cases which record
// entry and exit times may be tested deterministically.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System is the Clock which reads the operating system wall clock.
// Returned times are in UTC and truncated to microseconds, matching
// the timestamp precision of the supported databases, so a persisted
// and queried time equals its in-memory counterpart.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
