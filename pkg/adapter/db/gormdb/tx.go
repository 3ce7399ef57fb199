// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

// Tx is an ongoing transaction of a Conn. It must not be shared
// between goroutines. PostgreSQL runs it as READ COMMITTED, while
// SQLite transactions of a Pool never overlap.
type Tx struct {
	session
}

func (tx *Tx) IsTx() {
}
