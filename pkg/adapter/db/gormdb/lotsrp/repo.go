// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotsrp provides a reification of the repo.Lots interface.
package lotsrp

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

func (lots *Repo) Conn(c repo.Conn) repo.LotsConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, lotID uuid.UUID) (*model.Lot, error) {
	return Get(ctx, cq.Conn, lotID)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Lot, error) {
	return List(ctx, cq.Conn)
}

type txQueryer struct {
	*gormdb.Tx
}

func (lots *Repo) Tx(tx repo.Tx) repo.LotsTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, lot *model.Lot) error {
	return Create(ctx, tq.Tx, lot)
}

func (tq txQueryer) Get(ctx context.Context, lotID uuid.UUID) (*model.Lot, error) {
	return Get(ctx, tq.Tx, lotID)
}

func (tq txQueryer) List(ctx context.Context) ([]model.Lot, error) {
	return List(ctx, tq.Tx)
}
