// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// Sentinel errors of the parking domain. They describe what went wrong
// without repeating the arguments of the failed operation because its
// caller knows them already. Callers wrap them (usually using one of
// the cerr package constructors) in order to attach an HTTP status
// code and the missing context, while errors.Is keeps working on the
// resulting chain.
var (
	ErrLotNotFound     = errors.New("parking lot not found")
	ErrSlotNotFound    = errors.New("parking slot not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrInvalidLot indicates a lot definition which may not be
	// provisioned, e.g., having a non-positive capacity.
	ErrInvalidLot = errors.New("invalid parking lot definition")

	// ErrInvalidGate indicates an entry gate number outside of the
	// [1, GateCount] range of its lot.
	ErrInvalidGate = errors.New("invalid entry gate")

	ErrVehicleAlreadyParked = errors.New("vehicle is already parked")
	ErrNoAvailableSlot      = errors.New("no available parking slots")
	ErrAlreadyClosed        = errors.New("ticket is already closed")

	// ErrInvalidState reports a broken internal invariant, such as
	// releasing a slot which is available already. It is never caused
	// by end-users and must be reported to operators.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidDuration indicates an exit time before the entry time.
	ErrInvalidDuration = errors.New("exit time is before entry time")
)
