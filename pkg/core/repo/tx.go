// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is a database transaction. It must not be shared between
// goroutines. PostgreSQL runs it as READ COMMITTED, so the parking
// repositories take row locks (SELECT ... FOR UPDATE) where a slot is
// claimed or a ticket is closed. An embedded SQLite pool has a single
// connection and serializes whole transactions instead.
type Tx interface {
	Queryer

	// IsTx keeps a Conn from satisfying Tx by accident.
	IsTx()
}
