// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gormdb realizes the repo.Pool, repo.Conn, and repo.Tx
// interfaces using the GORM framework. Two dialects are supported.
// The PostgreSQL dialect is suitable for production deployments and
// supports concurrent transactions with row-level locks, while the
// embedded SQLite dialect (using a pure Go driver) is suitable for
// development and tests, serializing all transactions on a single
// connection.
//
// The entity repositories reside in the sub-packages (e.g., lotsrp)
// and unwrap the repo.Conn and repo.Tx instances as *Conn and *Tx in
// order to access the embedded *gorm.DB instance.
package gormdb

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/momeni/parking/pkg/core/model"
)

// Dialect names a supported DBMS.
type Dialect string

// Supported dialects. Their values match the gorm.Dialector names.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}

// uniqueViolation is the SQLSTATE of unique constraint violations.
const uniqueViolation = "23505"

// IsUniqueViolation reports if err is caused by a violated unique
// constraint or unique index, for all supported dialects.
func IsUniqueViolation(err error) bool {
	_, ok := ViolatedUnique(err)
	return ok
}

// ViolatedUnique returns the unique constraint (or index) which is
// violated by err. PostgreSQL reports its name, e.g., tickets_pkey,
// while SQLite reports its columns, e.g., tickets.slot_id.
func ViolatedUnique(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == uniqueViolation
	}
	const prefix = "UNIQUE constraint failed: "
	_, cols, found := strings.Cut(err.Error(), prefix)
	if !found {
		return "", false
	}
	cols, _, _ = strings.Cut(cols, " (")
	return cols, true
}
