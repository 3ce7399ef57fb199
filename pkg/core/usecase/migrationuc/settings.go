// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"

	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
)

// Settings represents the database-related settings which should be
// provided by a configuration file. It allows a database connection
// pool to be established for an asked role, reports the database schema
// version, and acts as a factory for the repo.SchemaInitializer and
// repo.Schema instances.
type Settings interface {
	// ConnectionPool creates a database connection pool using the
	// connection information which are kept in this Settings instance.
	// The `r` argument specifies the role name for the created pool.
	// Embedded databases ignore the role name.
	//
	// For PostgreSQL, passwords are kept in a pgpass formatted file
	// with lines like this:
	//
	//	host:port:dbname:role:password
	//
	// A temporary passwords file may hold the new passwords during an
	// incomplete renewal. If it was used for the pool establishment,
	// it will be moved over the main passwords file before returning.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// ManagesRoles reports if the target database supports roles and
	// schemas, hence, NewSchemaRepo and RenewPasswords may be used.
	ManagesRoles() bool

	// NewSchemaRepo instantiates a fresh Schema repository.
	// Role names may be optionally suffixed based on the settings, so
	// the Schema repository must obtain the same role name suffix.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer instance
	// which wraps the given transaction argument and can be used to
	// initialize the database with development or production suitable
	// data. Tables are persisted only if `tx` could commit.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// RenewPasswords generates new secure passwords for the given roles
	// and after recording them in a temporary file, will use the change
	// function in order to update the passwords of those roles in the
	// database too. The returned finalizer moves the temporary file
	// over the main passwords file and should be called after commit.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaVersion returns the semantic version of the database schema
	// which its connection information are kept by this Settings.
	SchemaVersion() model.SemVer
}
