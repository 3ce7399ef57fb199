// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer creates the parking tables of one schema version
// and fills them. It is bound to its destination (e.g., a transaction)
// when it is created, so its methods only need a context.
type SchemaInitializer interface {
	// InitDevSchema creates the tables and seeds a few lots (with all
	// of their slots) and vehicles for local experiments.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates the tables and leaves them empty.
	InitProdSchema(ctx context.Context) error
}

// Schema manages PostgreSQL schemas and the roles which may use them.
// It is only needed by the database initialization, the embedded
// SQLite dialect has neither schemas nor roles.
type Schema interface {
	// Tx unwraps tx, which must come from the same adapter.
	Tx(Tx) SchemaTxQueryer
}

// SchemaTxQueryer runs the schema management statements in an
// ongoing transaction, so a failed initialization leaves no half
// created schema or role behind.
type SchemaTxQueryer interface {
	// DropIfExists drops an empty schema. A missing schema is not an
	// error, while a schema which still has tables is.
	// The schema name must be trusted.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates a new schema which must not exist yet.
	// The schema name must be trusted.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates a LOGIN role without password.
	// Role names are suffixed according to the queryer settings in
	// this method and the following ones.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL on schema to role.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath makes schema the default search_path of role.
	SetSearchPath(ctx context.Context, schema string, role Role) error

	// ChangePasswords sets passwords[i] for roles[i]. The passwords
	// are hashed before leaving the process and only take effect
	// when the transaction commits.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}
