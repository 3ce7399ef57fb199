// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sqlitedb is an internal helper for the test packages.
// It creates a temporary SQLite database file, initializes its schema
// with the latest supported version, and returns a *gormdb.Pool which
// is closed automatically when the test finishes.
package sqlitedb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/migration"
	"github.com/momeni/parking/pkg/core/repo"
)

// NewProd creates an SQLite database with empty tables.
func NewProd(ctx context.Context, t *testing.T) *gormdb.Pool {
	return newPool(ctx, t, func(
		ctx context.Context, si repo.SchemaInitializer,
	) error {
		return si.InitProdSchema(ctx)
	})
}

// NewDev creates an SQLite database which is filled with the
// development suitable data.
func NewDev(ctx context.Context, t *testing.T) *gormdb.Pool {
	return newPool(ctx, t, func(
		ctx context.Context, si repo.SchemaInitializer,
	) error {
		return si.InitDevSchema(ctx)
	})
}

func newPool(
	ctx context.Context,
	t *testing.T,
	dbi func(context.Context, repo.SchemaInitializer) error,
) *gormdb.Pool {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pkweb.db")
	p, err := gormdb.NewSQLitePool(ctx, path)
	require.NoError(t, err, "opening %q", path)
	t.Cleanup(func() {
		require.NoError(t, p.Close(), "closing %q", path)
	})
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := migration.NewInitializer(tx, gormdb.Version)
			if err != nil {
				return err
			}
			return dbi(ctx, si)
		})
	})
	require.NoError(t, err, "initializing schema")
	return p
}
