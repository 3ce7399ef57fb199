// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"

	"gorm.io/gorm"

	"github.com/momeni/parking/pkg/core/repo"
)

// session holds the raw statement methods which are shared by Conn
// and Tx. Placeholders are written as ? and GORM rewrites them for
// the active dialect, e.g., to $1 for PostgreSQL.
type session struct {
	*gorm.DB
}

// Exec runs a statement and returns the affected rows count.
func (s session) Exec(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(sql, args...)
	return res.RowsAffected, res.Error
}

// Query runs a single statement. The returned Rows must be closed
// before the next statement of the same Conn or Tx.
func (s session) Query(
	ctx context.Context, sql string, args ...any,
) (repo.Rows, error) {
	rows, err := s.DB.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rows}, nil
}

// GORM gives the repository packages a context bound *gorm.DB.
func (s session) GORM(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx)
}

// Dialect names the DBMS behind s, so repositories can use
// dialect specific clauses like FOR UPDATE.
func (s session) Dialect() Dialect {
	return Dialect(s.DB.Dialector.Name())
}
