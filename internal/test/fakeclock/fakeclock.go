// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakeclock provides a manually advanced clock.Clock for tests.
package fakeclock

import (
	"sync"
	"time"
)

// Clock is a concurrency-safe fake clock. Its time only changes by
// calling Set or Advance methods.
type Clock struct {
	mutex sync.Mutex
	now   time.Time
}

// New creates a fake clock which reports the t time (in UTC).
func New(t time.Time) *Clock {
	return &Clock{now: t.UTC()}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

// Set moves the fake clock to the t time.
func (c *Clock) Set(t time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = t.UTC()
}

// Advance moves the fake clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = c.now.Add(d)
}
