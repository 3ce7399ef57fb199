// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/parking/pkg/core/log"
	"github.com/momeni/parking/pkg/core/repo"
)

// InitDBUseCase represents the database initialization use case. It may
// be used to initialize database with development or production
// suitable data as asked by the InitDev and InitProd methods.
type InitDBUseCase struct {
	settings   Settings    // target settings
	schemaRepo repo.Schema // schema management repo, or nil
}

// NewInitDB creates an InitDBUseCase instance, using the `ss` settings
// in order to find the target database connection information and
// create its schema initializer based on the expected schema version.
// When `ss` manages roles, its repo.Schema will be used for dropping
// and (re)creating an empty schema, creating the normal role, granting
// it privileges on that schema, and renewing the roles passwords.
func NewInitDB(ss Settings) *InitDBUseCase {
	iduc := &InitDBUseCase{settings: ss}
	if ss.ManagesRoles() {
		iduc.schemaRepo = ss.NewSchemaRepo()
	}
	return iduc
}

// InitProd prepares an empty pkwebN schema (if N is the relevant major
// version) and fills it with the production suitable data, i.e., bare
// tables with no parking lot. For PostgreSQL, the schema is dropped and
// recreated using the admin role and in the same transaction, normal
// role is created (if missing) and granted privileges on that schema,
// and passwords of both roles are renewed. Thereafter, the tables are
// created using the normal role in a second transaction.
func (iduc *InitDBUseCase) InitProd(ctx context.Context) error {
	return iduc.initDB(
		ctx,
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitProdSchema(ctx)
		},
	)
}

// InitDev works like InitProd, but fills the created tables with the
// development suitable data, i.e., a few parking lots with their slots
// and a couple of registered vehicles.
func (iduc *InitDBUseCase) InitDev(ctx context.Context) error {
	return iduc.initDB(
		ctx,
		func(ctx context.Context, si repo.SchemaInitializer) error {
			return si.InitDevSchema(ctx)
		},
	)
}

func (iduc *InitDBUseCase) initDB(
	ctx context.Context,
	dbi func(ctx context.Context, si repo.SchemaInitializer) error,
) error {
	if iduc.schemaRepo != nil {
		if err := iduc.dropAndCreateAgain(ctx); err != nil {
			return fmt.Errorf("dropping/recreating schema: %w", err)
		}
	}
	p, err := iduc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := iduc.settings.SchemaInitializer(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			if err := dbi(ctx, si); err != nil {
				return fmt.Errorf("initializing schema: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("normal connection: %w", err)
	}
	log.Info(
		ctx, "database is initialized",
		slog.String("schema", SchemaName(iduc.settings.SchemaVersion()[0])),
	)
	return nil
}

func (iduc *InitDBUseCase) dropAndCreateAgain(
	ctx context.Context,
) error {
	p, err := iduc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := iduc.schemaRepo.Tx(tx)
			v := iduc.settings.SchemaVersion()
			sn := SchemaName(v[0])
			if err := q.DropIfExists(ctx, sn); err != nil {
				return fmt.Errorf("dropping %q: %w", sn, err)
			}
			if err := q.CreateSchema(ctx, sn); err != nil {
				return fmt.Errorf("creating %q: %w", sn, err)
			}
			if err := q.CreateRoleIfNotExists(
				ctx, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("creating normal role: %w", err)
			}
			if err := q.GrantPrivileges(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf("granting normal role privs: %w", err)
			}
			if err := q.SetSearchPath(
				ctx, sn, repo.NormalRole,
			); err != nil {
				return fmt.Errorf(
					"setting search_path of normal role to %q: %w",
					sn, err,
				)
			}
			finalizer, err = iduc.settings.RenewPasswords(
				ctx, q.ChangePasswords, repo.AdminRole, repo.NormalRole,
			)
			if err != nil {
				return fmt.Errorf("RenewPasswords: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err := finalizer(); err != nil {
		return fmt.Errorf("finalizing passwords renewal: %w", err)
	}
	return nil
}

// SchemaName returns the target database schema name for the given
// major version, i.e., pkwebN for version N.
func SchemaName(major uint) string {
	return fmt.Sprintf("pkweb%d", major)
}
