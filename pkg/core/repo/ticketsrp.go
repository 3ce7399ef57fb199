// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/core/model"
)

// TicketsConnQueryer lists the tickets queries which may run with a
// connection.
type TicketsConnQueryer interface {
	TicketsQueryer
}

// TicketsTxQueryer lists the tickets queries which must run in a
// transaction, either because they take row-level locks or because
// they must be rolled back together with the slots changes.
type TicketsTxQueryer interface {
	TicketsQueryer

	// Create inserts an open ticket. The t.ID must be filled by the
	// caller. If the vehicle has another open ticket, a Conflict error
	// wrapping model.ErrVehicleAlreadyParked is returned.
	Create(ctx context.Context, t *model.Ticket) error

	// GetForUpdate is like Get, but locks the ticket row until the
	// end of the transaction.
	GetForUpdate(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error)

	// FindOpenByVehicle returns the open ticket of vehicleID or nil
	// if the vehicle is not parked.
	FindOpenByVehicle(
		ctx context.Context, vehicleID uuid.UUID,
	) (*model.Ticket, error)

	// Close sets the exit time and total charge of an open ticket.
	// If the ticket is closed already, a Conflict error wrapping the
	// model.ErrAlreadyClosed is returned.
	Close(
		ctx context.Context,
		ticketID uuid.UUID,
		exit time.Time,
		charge decimal.Decimal,
	) (*model.Ticket, error)
}

// TicketsQueryer lists the read-only tickets queries.
type TicketsQueryer interface {
	// Get returns the ticketID ticket or a NotFound error wrapping
	// the model.ErrTicketNotFound.
	Get(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error)

	// ListOpen returns the open tickets, sorted by their entry time
	// (and slot number as the tie breaker). If lotID is not nil, only
	// the tickets of that lot are returned.
	ListOpen(ctx context.Context, lotID *uuid.UUID) ([]model.Ticket, error)

	// ListParkings is like ListOpen, but joins each ticket with its
	// vehicle, slot, and lot.
	ListParkings(
		ctx context.Context, lotID *uuid.UUID,
	) ([]model.Parking, error)
}

// Tickets is the tickets repository.
type Tickets interface {
	Conn(Conn) TicketsConnQueryer
	Tx(Tx) TicketsTxQueryer
}
