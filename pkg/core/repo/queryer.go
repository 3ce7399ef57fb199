// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer is the common interface of Conn and Tx for raw statements.
// The entity repositories are preferred whenever they cover a query,
// while raw statements are used for DDL and roles management.
type Queryer interface {
	// Exec runs sql with args and returns the affected rows count.
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)

	// Query runs sql with args and returns the resulting Rows which
	// must be closed by the caller.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows iterates over the results of a Queryer.Query call.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
}
