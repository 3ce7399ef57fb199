// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot models a parking lot. It is created once (together with all of
// its slots) and is immutable thereafter.
type Lot struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Capacity   int             `json:"capacity"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	GateCount  int             `json:"gate_count"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MoneyPlaces is the number of decimal places of rates and charges.
const MoneyPlaces = 2

// Validate checks the lot definition fields which are provided by
// end-users. Returned errors wrap ErrInvalidLot.
func (l *Lot) Validate() error {
	switch {
	case l.Name == "":
		return fmt.Errorf("empty name: %w", ErrInvalidLot)
	case l.Capacity <= 0:
		return fmt.Errorf("capacity=%d: %w", l.Capacity, ErrInvalidLot)
	case l.HourlyRate.IsNegative():
		return fmt.Errorf(
			"hourly rate=%s: %w", l.HourlyRate, ErrInvalidLot,
		)
	case !l.HourlyRate.Equal(l.HourlyRate.Truncate(MoneyPlaces)):
		return fmt.Errorf(
			"hourly rate=%s has more than %d decimal places: %w",
			l.HourlyRate, MoneyPlaces, ErrInvalidLot,
		)
	case l.GateCount < 1:
		return fmt.Errorf("gate count=%d: %w", l.GateCount, ErrInvalidLot)
	}
	return nil
}

// ValidateGate returns ErrInvalidGate if gate is not in the
// [1, GateCount] range.
func (l *Lot) ValidateGate(gate int) error {
	if gate < 1 || gate > l.GateCount {
		return fmt.Errorf(
			"gate must be between 1 and %d: %w", l.GateCount, ErrInvalidGate,
		)
	}
	return nil
}

// Slot is one physical parking space of a Lot. Its number is unique
// within the lot and slots are numbered from zero. The Available flag
// is false if and only if an open ticket references the slot.
type Slot struct {
	ID        uuid.UUID `json:"id"`
	LotID     uuid.UUID `json:"lot_id"`
	Number    int       `json:"slot_number"`
	Available bool      `json:"is_available"`
}

// Occupancy summarizes the slots of one lot.
type Occupancy struct {
	LotID     uuid.UUID `json:"lot_id"`
	Capacity  int       `json:"capacity"`
	Occupied  int       `json:"occupied"`
	Available int       `json:"available"`
}
