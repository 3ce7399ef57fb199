// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket records one stay of a vehicle in a slot. A ticket is open
// while its ExitTime is nil. Closing a ticket sets ExitTime and
// TotalCharge exactly once. Tickets are never deleted.
type Ticket struct {
	ID          uuid.UUID       `json:"id"`
	SlotID      uuid.UUID       `json:"slot_id"`
	LotID       uuid.UUID       `json:"lot_id"`
	VehicleID   uuid.UUID       `json:"vehicle_id"`
	EntryGate   int             `json:"entry_gate"`
	EntryTime   time.Time       `json:"entry_time"`
	ExitTime    *time.Time      `json:"exit_time"`
	TotalCharge decimal.Decimal `json:"total_charge"`
}

// Open reports if the ticket has not been closed yet.
func (t *Ticket) Open() bool {
	return t.ExitTime == nil
}

// Duration returns the stay duration of a closed ticket and zero for
// an open ticket.
func (t *Ticket) Duration() time.Duration {
	if t.ExitTime == nil {
		return 0
	}
	return t.ExitTime.Sub(t.EntryTime)
}

// Parking is the joined view of an open ticket, reporting the parked
// vehicle together with its slot and lot.
type Parking struct {
	Ticket  Ticket  `json:"ticket"`
	Vehicle Vehicle `json:"vehicle"`
	Slot    Slot    `json:"slot"`
	Lot     Lot     `json:"lot"`
}
