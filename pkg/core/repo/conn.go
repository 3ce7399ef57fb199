// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a callback which runs in a transaction. Returning a nil
// error commits the transaction, while a non-nil error (or a panic)
// rolls it back.
type TxHandler func(context.Context, Tx) error

// Conn represents an acquired database connection. Statements which
// are executed on it directly use their own auto-committed
// transactions.
type Conn interface {
	Queryer

	// Tx begins a transaction and passes it to handler.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn is a marker method which prevents a Tx from being passed
	// where a Conn is expected.
	IsConn()
}
