// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/momeni/parking/pkg/core/repo"
)

// Pool is a database connections pool which embeds *gorm.DB.
type Pool struct {
	*gorm.DB
}

// NewPostgresPool connects to a PostgreSQL server using the given url
// and tests the connection before returning the pool.
func NewPostgresPool(ctx context.Context, url string) (*Pool, error) {
	return newPool(ctx, postgres.Open(url), 0)
}

// NewSQLitePool opens (or creates) the SQLite database file at path.
// Foreign keys are enforced and a busy timeout is configured.
// The returned pool holds one connection, so transactions are executed
// one at a time and the read-check-write sequences of repositories may
// not interleave. Consequently, a ConnHandler must not acquire another
// connection from the same pool.
func NewSQLitePool(ctx context.Context, path string) (*Pool, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	return newPool(ctx, sqlite.Open(dsn), 1)
}

func newPool(
	ctx context.Context, d gorm.Dialector, maxConns int,
) (*Pool, error) {
	gdb, err := gorm.Open(d, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	gdb = gdb.Session(&gorm.Session{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
				// Set to false in order to log with replaced vars
				ParameterizedQueries: true,
			}),
	})
	pool := &Pool{DB: gdb}
	if maxConns > 0 {
		db, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("accessing sql.DB: %w", err)
		}
		db.SetMaxOpenConns(maxConns)
	}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

type ConnHandler = repo.ConnHandler

func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a connection from p and passes it to the f handler.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{session{c}}
		return f(ctx, cc)
	})
}

// Dialect returns the DBMS dialect of p.
func (p *Pool) Dialect() Dialect {
	return Dialect(p.DB.Dialector.Name())
}

// Close closes all connections of p.
func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
