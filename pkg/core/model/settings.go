// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// VisibleSettings contains settings which are visible by end-users.
// They are taken from the configuration file (possibly overridden by
// environment variables) and may change only by reloading of the
// configuration file. Settings which are only relevant for the server
// startup are kept in the embedded ImmutableSettings struct.
//
// This model layer struct is required (in addition to its version
// dependent adapters layer counterparts) because settings should be
// reported to end-users as required from the use cases layer.
type VisibleSettings struct {
	// Lots contains the lots management related settings.
	Lots LotsSettings `json:"lots"`

	*ImmutableSettings
}

// LotsSettings represents the lots management related settings.
type LotsSettings struct {
	// MaxCapacity is the maximum number of slots per lot.
	// A nil value indicates that the default limit is in effect.
	MaxCapacity *int `json:"max_capacity"`
}

// ImmutableSettings contains settings which can be configured only
// before the server startup, but are visible by end-users.
type ImmutableSettings struct {
	// Logger reports if server-side REST API logging is enabled.
	Logger bool `json:"logger"`

	// Metrics reports if the Prometheus metrics are exported.
	Metrics bool `json:"metrics"`
}
