// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package slotsrp provides a reification of the repo.Slots interface.
package slotsrp

import (
	"context"

	"github.com/google/uuid"

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

func (slots *Repo) Conn(c repo.Conn) repo.SlotsConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, slotID uuid.UUID) (*model.Slot, error) {
	return Get(ctx, cq.Conn, slotID)
}

func (cq connQueryer) ListByLot(ctx context.Context, lotID uuid.UUID) ([]model.Slot, error) {
	return ListByLot(ctx, cq.Conn, lotID)
}

func (cq connQueryer) Count(ctx context.Context, lotID uuid.UUID) (int, int, error) {
	return Count(ctx, cq.Conn, lotID)
}

type txQueryer struct {
	*gormdb.Tx
}

func (slots *Repo) Tx(tx repo.Tx) repo.SlotsTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) CreateAll(ctx context.Context, lotID uuid.UUID, capacity int) ([]model.Slot, error) {
	return CreateAll(ctx, tq.Tx, lotID, capacity)
}

func (tq txQueryer) ClaimFree(ctx context.Context, lotID uuid.UUID) (*model.Slot, error) {
	return ClaimFree(ctx, tq.Tx, lotID)
}

func (tq txQueryer) Release(ctx context.Context, slotID uuid.UUID) (*model.Slot, error) {
	return Release(ctx, tq.Tx, slotID)
}

func (tq txQueryer) Get(ctx context.Context, slotID uuid.UUID) (*model.Slot, error) {
	return Get(ctx, tq.Tx, slotID)
}

func (tq txQueryer) ListByLot(ctx context.Context, lotID uuid.UUID) ([]model.Slot, error) {
	return ListByLot(ctx, tq.Tx, lotID)
}

func (tq txQueryer) Count(ctx context.Context, lotID uuid.UUID) (int, int, error) {
	return Count(ctx, tq.Tx, lotID)
}
