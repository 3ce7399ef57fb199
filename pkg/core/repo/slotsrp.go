// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/momeni/parking/pkg/core/model"
)

// SlotsConnQueryer lists the slots queries which may run with a
// connection.
type SlotsConnQueryer interface {
	SlotsQueryer
}

// SlotsTxQueryer lists the slots queries which change the slots
// availability. They must run in a transaction, so their effects may
// be rolled back together with the tickets changes.
type SlotsTxQueryer interface {
	SlotsQueryer

	// CreateAll inserts capacity slots for the lotID lot, numbered
	// from zero, and all available.
	CreateAll(
		ctx context.Context, lotID uuid.UUID, capacity int,
	) ([]model.Slot, error)

	// ClaimFree finds the available slot of the lotID lot with the
	// lowest number, marks it as unavailable, and returns it.
	// Concurrent transactions never claim the same slot. If no slot
	// is available, a Conflict error wrapping model.ErrNoAvailableSlot
	// is returned.
	ClaimFree(ctx context.Context, lotID uuid.UUID) (*model.Slot, error)

	// Release marks the slotID slot as available again. If the slot
	// is available already, an Internal error wrapping the
	// model.ErrInvalidState is returned and nothing is changed.
	Release(ctx context.Context, slotID uuid.UUID) (*model.Slot, error)
}

// SlotsQueryer lists the read-only slots queries.
type SlotsQueryer interface {
	// Get returns the slotID slot or a NotFound error wrapping the
	// model.ErrSlotNotFound.
	Get(ctx context.Context, slotID uuid.UUID) (*model.Slot, error)

	// ListByLot returns the slots of the lotID lot sorted by number.
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]model.Slot, error)

	// Count returns the number of all and available slots of the
	// lotID lot.
	Count(
		ctx context.Context, lotID uuid.UUID,
	) (total, available int, err error)
}

// Slots is the parking slots repository.
type Slots interface {
	Conn(Conn) SlotsConnQueryer
	Tx(Tx) SlotsTxQueryer
}
