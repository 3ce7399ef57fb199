// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package stlmig1

// tables lists the table names in their creation order.
var tables = []string{"parking_lots", "parking_slots", "vehicles", "tickets"}

// The partial unique indices over open tickets guarantee that each
// vehicle has at most one open ticket and each slot is referenced by
// at most one open ticket, even if a repository check is skipped.
var postgresDDL = []string{
	`CREATE TABLE parking_lots (
	id UUID PRIMARY KEY,
	name VARCHAR(100) NOT NULL UNIQUE,
	capacity INTEGER NOT NULL CHECK (capacity > 0),
	hourly_rate NUMERIC(12, 2) NOT NULL CHECK (hourly_rate >= 0),
	gate_count INTEGER NOT NULL CHECK (gate_count >= 1),
	created_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE parking_slots (
	id UUID PRIMARY KEY,
	lot_id UUID NOT NULL REFERENCES parking_lots (id) ON DELETE CASCADE,
	slot_number INTEGER NOT NULL CHECK (slot_number >= 0),
	is_available BOOLEAN NOT NULL DEFAULT TRUE,
	UNIQUE (lot_id, slot_number)
)`,
	`CREATE INDEX parking_slots_free_idx
	ON parking_slots (lot_id, slot_number) WHERE is_available`,
	`CREATE TABLE vehicles (
	id UUID PRIMARY KEY,
	serial_number VARCHAR(50) NOT NULL,
	type VARCHAR(10) NOT NULL CHECK (type IN ('car', 'bike')),
	registered_at TIMESTAMPTZ NOT NULL
)`,
	`CREATE TABLE tickets (
	id UUID PRIMARY KEY,
	slot_id UUID NOT NULL REFERENCES parking_slots (id),
	lot_id UUID NOT NULL REFERENCES parking_lots (id),
	vehicle_id UUID NOT NULL REFERENCES vehicles (id),
	entry_gate INTEGER NOT NULL CHECK (entry_gate >= 1),
	entry_time TIMESTAMPTZ NOT NULL,
	exit_time TIMESTAMPTZ,
	total_charge NUMERIC(12, 2) NOT NULL DEFAULT 0
		CHECK (total_charge >= 0),
	CHECK (exit_time IS NULL OR exit_time >= entry_time)
)`,
	`CREATE UNIQUE INDEX tickets_open_vehicle_idx
	ON tickets (vehicle_id) WHERE exit_time IS NULL`,
	`CREATE UNIQUE INDEX tickets_open_slot_idx
	ON tickets (slot_id) WHERE exit_time IS NULL`,
	`CREATE INDEX tickets_open_entry_idx
	ON tickets (lot_id, entry_time) WHERE exit_time IS NULL`,
}

// SQLite keeps uuids and decimals as TEXT, so decimals stay exact.
var sqliteDDL = []string{
	`CREATE TABLE parking_lots (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	capacity INTEGER NOT NULL CHECK (capacity > 0),
	hourly_rate TEXT NOT NULL,
	gate_count INTEGER NOT NULL CHECK (gate_count >= 1),
	created_at DATETIME NOT NULL
)`,
	`CREATE TABLE parking_slots (
	id TEXT PRIMARY KEY,
	lot_id TEXT NOT NULL REFERENCES parking_lots (id) ON DELETE CASCADE,
	slot_number INTEGER NOT NULL CHECK (slot_number >= 0),
	is_available BOOLEAN NOT NULL DEFAULT 1,
	UNIQUE (lot_id, slot_number)
)`,
	`CREATE TABLE vehicles (
	id TEXT PRIMARY KEY,
	serial_number TEXT NOT NULL,
	type TEXT NOT NULL CHECK (type IN ('car', 'bike')),
	registered_at DATETIME NOT NULL
)`,
	`CREATE TABLE tickets (
	id TEXT PRIMARY KEY,
	slot_id TEXT NOT NULL REFERENCES parking_slots (id),
	lot_id TEXT NOT NULL REFERENCES parking_lots (id),
	vehicle_id TEXT NOT NULL REFERENCES vehicles (id),
	entry_gate INTEGER NOT NULL CHECK (entry_gate >= 1),
	entry_time DATETIME NOT NULL,
	exit_time DATETIME,
	total_charge TEXT NOT NULL DEFAULT '0'
)`,
	`CREATE UNIQUE INDEX tickets_open_vehicle_idx
	ON tickets (vehicle_id) WHERE exit_time IS NULL`,
	`CREATE UNIQUE INDEX tickets_open_slot_idx
	ON tickets (slot_id) WHERE exit_time IS NULL`,
	`CREATE INDEX tickets_open_entry_idx
	ON tickets (lot_id, entry_time) WHERE exit_time IS NULL`,
}
