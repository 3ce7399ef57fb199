// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role names a database user whose password is kept in a pass file
// beside the configuration file. Connection pools are opened for a
// Role, so its privileges bound what the pool may do.
type Role string

const (
	// AdminRole is a pre-existing superuser. It is only used to
	// create the schema and NormalRole during the db init command.
	AdminRole Role = "admin"

	// NormalRole owns the parking tables and serves the parking
	// requests of pkweb.
	NormalRole Role = "pkweb"
)
