// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/momeni/parking/pkg/core/model"
)

// LotsConnQueryer lists the lots queries which may run with a
// connection.
type LotsConnQueryer interface {
	LotsQueryer
}

// LotsTxQueryer lists the lots queries which may run in a transaction.
// Creating a lot needs a transaction because its slots must be created
// atomically with it.
type LotsTxQueryer interface {
	LotsQueryer

	// Create inserts lot. The lot.ID must be filled by the caller.
	Create(ctx context.Context, lot *model.Lot) error
}

// LotsQueryer lists the lots queries which may run with a connection
// or in a transaction.
type LotsQueryer interface {
	// Get returns the lotID lot or a NotFound error wrapping the
	// model.ErrLotNotFound.
	Get(ctx context.Context, lotID uuid.UUID) (*model.Lot, error)

	// List returns all lots, sorted by their names.
	List(ctx context.Context) ([]model.Lot, error)
}

// Lots is the parking lots repository.
type Lots interface {
	Conn(Conn) LotsConnQueryer
	Tx(Tx) LotsTxQueryer
}
