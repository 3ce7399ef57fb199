// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package parkinguc contains the parking UseCase (coordinator) which
// exposes the entry, exit, and current parkings operations to the
// adapter layer. It delegates to the tickets use case and reports the
// outcomes to an optional Observer, e.g., for exporting metrics.
package parkinguc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/core/log"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/usecase/ticketsuc"
)

// Operation names which are reported to the Observer.
const (
	OpPark   = "park"
	OpRemove = "remove"
)

// Observer is notified about the parking operations outcomes.
// Its methods are called synchronously and must return quickly.
type Observer interface {
	Parked(lotID uuid.UUID)
	Removed(lotID uuid.UUID, stay time.Duration, charge decimal.Decimal)
	Rejected(op string, err error)
}

// UseCase represents the parking coordinator.
type UseCase struct {
	tickets  *ticketsuc.UseCase
	observer Observer
}

// Entry is the outcome of a Park operation.
type Entry struct {
	Ticket *model.Ticket
	Slot   *model.Slot
}

// New instantiates a parking use case.
func New(t *ticketsuc.UseCase, opts ...Option) (*UseCase, error) {
	uc := &UseCase{tickets: t}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.observer == nil {
		uc.observer = nopObserver{}
	}
	return uc, nil
}

// Park assigns a slot of the lotID lot to the vehicleID vehicle which
// enters from the entryGate gate and opens a ticket for it.
func (parking *UseCase) Park(
	ctx context.Context, vehicleID, lotID uuid.UUID, entryGate int,
) (*Entry, error) {
	t, slot, err := parking.tickets.OpenTicket(
		ctx, vehicleID, lotID, entryGate,
	)
	if err != nil {
		parking.reject(ctx, OpPark, err)
		return nil, err
	}
	parking.observer.Parked(lotID)
	return &Entry{Ticket: t, Slot: slot}, nil
}

// Remove closes the ticketID ticket, charging its vehicle, and frees
// its slot.
func (parking *UseCase) Remove(
	ctx context.Context, ticketID uuid.UUID,
) (*model.Ticket, error) {
	t, err := parking.tickets.CloseTicket(ctx, ticketID)
	if err != nil {
		parking.reject(ctx, OpRemove, err)
		return nil, err
	}
	parking.observer.Removed(t.LotID, t.Duration(), t.TotalCharge)
	return t, nil
}

// CurrentParkings lists the parked vehicles of the lotID lot, or all
// lots if lotID is nil, sorted by their entry times.
func (parking *UseCase) CurrentParkings(
	ctx context.Context, lotID *uuid.UUID,
) ([]model.Parking, error) {
	return parking.tickets.CurrentParkings(ctx, lotID)
}

// Ticket returns the ticketID ticket.
func (parking *UseCase) Ticket(
	ctx context.Context, ticketID uuid.UUID,
) (*model.Ticket, error) {
	return parking.tickets.GetTicket(ctx, ticketID)
}

func (parking *UseCase) reject(ctx context.Context, op string, err error) {
	if errors.Is(err, model.ErrInvalidState) {
		log.Error(
			ctx, "parking invariant is violated",
			slog.String("op", op), log.Err("err", err),
		)
	}
	parking.observer.Rejected(op, err)
}

type nopObserver struct{}

func (nopObserver) Parked(uuid.UUID)                                  {}
func (nopObserver) Removed(uuid.UUID, time.Duration, decimal.Decimal) {}
func (nopObserver) Rejected(string, error)                            {}
