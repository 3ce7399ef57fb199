// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrp provides a reification of the repo.Vehicles
// interface.
package vehiclesrp

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

func (vehicles *Repo) Conn(c repo.Conn) repo.VehiclesConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, cq.Conn, v)
}

func (cq connQueryer) Get(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error) {
	return Get(ctx, cq.Conn, vehicleID)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Vehicle, error) {
	return List(ctx, cq.Conn)
}

type txQueryer struct {
	*gormdb.Tx
}

func (vehicles *Repo) Tx(tx repo.Tx) repo.VehiclesTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Lock(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error) {
	return Lock(ctx, tq.Tx, vehicleID)
}

func (tq txQueryer) Create(ctx context.Context, v *model.Vehicle) error {
	return Create(ctx, tq.Tx, v)
}

func (tq txQueryer) Get(ctx context.Context, vehicleID uuid.UUID) (*model.Vehicle, error) {
	return Get(ctx, tq.Tx, vehicleID)
}

func (tq txQueryer) List(ctx context.Context) ([]model.Vehicle, error) {
	return List(ctx, tq.Tx)
}
