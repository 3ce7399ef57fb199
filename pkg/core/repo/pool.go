// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the repository interfaces which are required
// by the use cases layer. Adapters (such as the gormdb package) realize
// them for a specific DBMS. Each entity repository is a stateless
// object with Conn and Tx methods which wrap a connection or an ongoing
// transaction and return the relevant queryer interfaces, so use cases
// can decide about the transaction boundaries themselves.
package repo

import "context"

// ConnHandler is a callback which receives an acquired connection.
// The connection is released when the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connections pool.
type Pool interface {
	// Conn acquires a connection and passes it to handler. Handlers
	// must not call Conn on the same pool again because the pool may
	// hold a single connection (e.g., for an embedded database).
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all connections of the pool.
	Close() error
}
