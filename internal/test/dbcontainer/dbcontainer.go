// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a throwaway postgres:16 container for the
// PostgreSQL flavored integration tests and opens a *gormdb.Pool on it.
// Without a DOCKER_HOST (e.g., unix://$XDG_RUNTIME_DIR/podman/podman.sock)
// the calling test is skipped, so the SQLite tests remain the default.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
)

// Version is the PostgreSQL image tag which is started by New.
const Version = "16"

// New starts the container and connects to it within timeout.
// The ctx is also used for the shutdown. Whatever the value of ok,
// callers must run dfrs in reverse order once they are done.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *gormdb.Pool,
	dfrs []func(),
	ok bool,
) {
	if _, found := os.LookupEnv("DOCKER_HOST"); !found {
		t.Skip("DOCKER_HOST is not set, skipping PostgreSQL tests")
	}
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(startCtx, Version)
	if ok = assert.NoError(t, err, "starting postgres container"); !ok {
		return
	}
	dfrs = append(dfrs, func() {
		assert.NoError(t, pg.Shutdown(ctx), "stopping postgres container")
	})
	pool, err = connect(startCtx, pg.ConnectionString())
	if ok = assert.NoError(t, err, "connecting to postgres"); !ok {
		return
	}
	dfrs = append(dfrs, func() {
		assert.NoError(t, pool.Close(), "closing the connections pool")
	})
	return
}

// connect retries while the server is still booting or refusing
// connections, until ctx expires.
func connect(ctx context.Context, url string) (*gormdb.Pool, error) {
	for {
		pool, err := gormdb.NewPostgresPool(ctx, url)
		if err == nil || ctx.Err() != nil || !transient(err) {
			return pool, err
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func transient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "57P03" // cannot_connect_now
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
