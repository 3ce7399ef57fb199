// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package ticketsrp provides a reification of the repo.Tickets
// interface.
package ticketsrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

func (tickets *Repo) Conn(c repo.Conn) repo.TicketsConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	return Get(ctx, cq.Conn, ticketID)
}

func (cq connQueryer) ListOpen(ctx context.Context, lotID *uuid.UUID) ([]model.Ticket, error) {
	return ListOpen(ctx, cq.Conn, lotID)
}

func (cq connQueryer) ListParkings(ctx context.Context, lotID *uuid.UUID) ([]model.Parking, error) {
	return ListParkings(ctx, cq.Conn, lotID)
}

type txQueryer struct {
	*gormdb.Tx
}

func (tickets *Repo) Tx(tx repo.Tx) repo.TicketsTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, t *model.Ticket) error {
	return Create(ctx, tq.Tx, t)
}

func (tq txQueryer) GetForUpdate(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	return GetForUpdate(ctx, tq.Tx, ticketID)
}

func (tq txQueryer) FindOpenByVehicle(ctx context.Context, vehicleID uuid.UUID) (*model.Ticket, error) {
	return FindOpenByVehicle(ctx, tq.Tx, vehicleID)
}

func (tq txQueryer) Close(
	ctx context.Context,
	ticketID uuid.UUID,
	exit time.Time,
	charge decimal.Decimal,
) (*model.Ticket, error) {
	return Close(ctx, tq.Tx, ticketID, exit, charge)
}

func (tq txQueryer) Get(ctx context.Context, ticketID uuid.UUID) (*model.Ticket, error) {
	return Get(ctx, tq.Tx, ticketID)
}

func (tq txQueryer) ListOpen(ctx context.Context, lotID *uuid.UUID) ([]model.Ticket, error) {
	return ListOpen(ctx, tq.Tx, lotID)
}

func (tq txQueryer) ListParkings(ctx context.Context, lotID *uuid.UUID) ([]model.Parking, error) {
	return ListParkings(ctx, tq.Tx, lotID)
}
