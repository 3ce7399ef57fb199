// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ticketsuc contains the tickets UseCase (ticket ledger) which
// opens a ticket when a vehicle enters a lot and closes it, computing
// the parking charge, when the vehicle exits.
//
// Opening a ticket is a single transaction: the vehicle row is locked,
// so concurrent attempts for one vehicle are serialized, a free slot is
// claimed, and the ticket is inserted. Any failure rolls back the slot
// claim too. Closing a ticket commits the ticket changes first and then
// releases its slot in a second transaction. A failed release leaves
// the ticket closed and is reported to the operators by logging.
package ticketsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/core/billing"
	"github.com/momeni/parking/pkg/core/cerr"
	"github.com/momeni/parking/pkg/core/clock"
	"github.com/momeni/parking/pkg/core/log"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/slotsuc"
)

// UseCase represents the ticket ledger.
type UseCase struct {
	pool       repo.Pool
	lotsrp     repo.Lots
	vehiclesrp repo.Vehicles
	ticketsrp  repo.Tickets
	slots      *slotsuc.UseCase

	clock clock.Clock
}

// New instantiates a tickets use case.
func New(
	p repo.Pool,
	l repo.Lots,
	v repo.Vehicles,
	t repo.Tickets,
	s *slotsuc.UseCase,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		pool:       p,
		lotsrp:     l,
		vehiclesrp: v,
		ticketsrp:  t,
		slots:      s,
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.clock == nil {
		uc.clock = clock.System{}
	}
	return uc, nil
}

// OpenTicket parks the vehicleID vehicle in the lotID lot which enters
// from the entryGate gate. The lowest numbered free slot is claimed and
// an open ticket referencing it is returned together with that slot.
//
// Errors wrap model.ErrVehicleNotFound or model.ErrLotNotFound if the
// vehicle or lot do not exist, model.ErrInvalidGate if the gate is out
// of range, model.ErrVehicleAlreadyParked if the vehicle has another
// open ticket, and model.ErrNoAvailableSlot if the lot is full.
func (tickets *UseCase) OpenTicket(
	ctx context.Context, vehicleID, lotID uuid.UUID, entryGate int,
) (t *model.Ticket, slot *model.Slot, err error) {
	err = tickets.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			t, slot, err = tickets.openTicket(
				ctx, tx, vehicleID, lotID, entryGate,
			)
			return err
		})
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info(
		ctx, "ticket is opened",
		log.UUID("ticket", t.ID),
		log.UUID("vehicle", vehicleID),
		log.UUID("lot", lotID),
		slog.Int("slot", slot.Number),
		slog.Int("gate", entryGate),
	)
	return t, slot, nil
}

func (tickets *UseCase) openTicket(
	ctx context.Context,
	tx repo.Tx,
	vehicleID, lotID uuid.UUID,
	entryGate int,
) (*model.Ticket, *model.Slot, error) {
	if _, err := tickets.vehiclesrp.Tx(tx).Lock(ctx, vehicleID); err != nil {
		return nil, nil, err
	}
	lot, err := tickets.lotsrp.Tx(tx).Get(ctx, lotID)
	if err != nil {
		return nil, nil, err
	}
	if err := lot.ValidateGate(entryGate); err != nil {
		return nil, nil, cerr.BadRequest(err)
	}
	q := tickets.ticketsrp.Tx(tx)
	open, err := q.FindOpenByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, nil, fmt.Errorf("finding open ticket: %w", err)
	}
	if open != nil {
		return nil, nil, cerr.Conflict(model.ErrVehicleAlreadyParked)
	}
	slot, err := tickets.slots.ClaimFreeSlot(ctx, tx, lotID)
	if err != nil {
		return nil, nil, err
	}
	t := &model.Ticket{
		ID:          uuid.New(),
		SlotID:      slot.ID,
		LotID:       lotID,
		VehicleID:   vehicleID,
		EntryGate:   entryGate,
		EntryTime:   tickets.clock.Now(),
		TotalCharge: decimal.Zero,
	}
	if err := q.Create(ctx, t); err != nil {
		return nil, nil, err
	}
	return t, slot, nil
}

// CloseTicket closes the ticketID open ticket, setting its exit time
// and total charge, and releases its slot. It fails with an error
// wrapping model.ErrTicketNotFound or model.ErrAlreadyClosed if the
// ticket does not exist or is closed already.
//
// The closed ticket is persisted before its slot is released. If the
// release fails, the failure is logged and the closed ticket is
// returned without an error because the vehicle has left already.
func (tickets *UseCase) CloseTicket(
	ctx context.Context, ticketID uuid.UUID,
) (t *model.Ticket, err error) {
	err = tickets.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		err := c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			closed, err := tickets.closeTicket(ctx, tx, ticketID)
			t = closed
			return err
		})
		if err != nil {
			return err
		}
		err = c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, err := tickets.slots.ReleaseSlot(ctx, tx, t.SlotID)
			return err
		})
		if err != nil {
			log.Error(
				ctx, "closed ticket slot could not be released",
				log.UUID("ticket", t.ID),
				log.UUID("slot", t.SlotID),
				log.Err("err", err),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "ticket is closed",
		log.UUID("ticket", t.ID),
		log.Decimal("charge", t.TotalCharge),
	)
	return t, nil
}

func (tickets *UseCase) closeTicket(
	ctx context.Context, tx repo.Tx, ticketID uuid.UUID,
) (*model.Ticket, error) {
	q := tickets.ticketsrp.Tx(tx)
	t, err := q.GetForUpdate(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !t.Open() {
		return nil, cerr.Conflict(model.ErrAlreadyClosed)
	}
	lot, err := tickets.lotsrp.Tx(tx).Get(ctx, t.LotID)
	if err != nil {
		return nil, fmt.Errorf("finding ticket lot: %w", err)
	}
	exit := tickets.clock.Now()
	charge, err := billing.ComputeCharge(t.EntryTime, exit, lot.HourlyRate)
	if err != nil {
		return nil, cerr.Internal(fmt.Errorf("billing: %w", err))
	}
	return q.Close(ctx, ticketID, exit, charge)
}

// GetTicket returns the ticketID ticket.
func (tickets *UseCase) GetTicket(
	ctx context.Context, ticketID uuid.UUID,
) (t *model.Ticket, err error) {
	err = tickets.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		t, err = tickets.ticketsrp.Conn(c).Get(ctx, ticketID)
		return err
	})
	if err != nil {
		t = nil
	}
	return
}

// ListOpenTickets returns the open tickets sorted by their entry times.
// If lotID is not nil, only tickets of that lot are returned and an
// error wrapping model.ErrLotNotFound is returned if it does not exist.
func (tickets *UseCase) ListOpenTickets(
	ctx context.Context, lotID *uuid.UUID,
) (tt []model.Ticket, err error) {
	err = tickets.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if err := tickets.checkLot(ctx, c, lotID); err != nil {
			return err
		}
		tt, err = tickets.ticketsrp.Conn(c).ListOpen(ctx, lotID)
		return err
	})
	if err != nil {
		tt = nil
	}
	return
}

// CurrentParkings is like ListOpenTickets, but joins each ticket with
// its vehicle, slot, and lot.
func (tickets *UseCase) CurrentParkings(
	ctx context.Context, lotID *uuid.UUID,
) (pp []model.Parking, err error) {
	err = tickets.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		if err := tickets.checkLot(ctx, c, lotID); err != nil {
			return err
		}
		pp, err = tickets.ticketsrp.Conn(c).ListParkings(ctx, lotID)
		return err
	})
	if err != nil {
		pp = nil
	}
	return
}

func (tickets *UseCase) checkLot(
	ctx context.Context, c repo.Conn, lotID *uuid.UUID,
) error {
	if lotID == nil {
		return nil
	}
	_, err := tickets.lotsrp.Conn(c).Get(ctx, *lotID)
	return err
}
