// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/internal/test/dbcontainer"
	"github.com/momeni/parking/internal/test/schema"
	"github.com/momeni/parking/pkg/adapter/config/cfg1"
	"github.com/momeni/parking/pkg/adapter/config/vers"
	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/adapter/hash/scram"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/migrationuc"
)

var _ migrationuc.Settings = (*cfg1.Config)(nil)

func newConfig(t *testing.T, d cfg1.Database) *cfg1.Config {
	c := &cfg1.Config{
		Database: d,
		Vers: vers.Config{
			Versions: vers.Versions{
				Database: gormdb.Version,
				Config:   cfg1.Version,
			},
		},
	}
	require.NoError(t, c.ValidateAndNormalize(), "validating config")
	return c
}

// initAndVerify initializes the database of `c` with the development
// or production data and verifies the result using the normal role.
func initAndVerify(
	ctx context.Context, t *testing.T, c *cfg1.Config, dev bool,
) {
	iduc := migrationuc.NewInitDB(c)
	initFn, verify := iduc.InitProd, schema.Verifier.VerifyProdData
	if dev {
		initFn, verify = iduc.InitDev, schema.Verifier.VerifyDevData
	}
	require.NoError(t, initFn(ctx), "initializing database")
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	require.NoError(t, err, "connecting with normal role")
	defer func() {
		assert.NoError(t, p.Close(), "closing pool")
	}()
	err = p.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		v, err := schema.NewVerifier(cn, c.SchemaVersion())
		if err != nil {
			return err
		}
		v.VerifySchema(ctx, t)
		verify(v, ctx, t)
		return nil
	})
	require.NoError(t, err, "verifying database")
}

func TestInitSQLite(t *testing.T) {
	ctx := context.Background()
	for _, mode := range []string{"dev", "prod"} {
		t.Run(mode, func(t *testing.T) {
			c := newConfig(t, cfg1.Database{
				Driver: cfg1.DriverSQLite,
				Path:   filepath.Join(t.TempDir(), "pkweb.db"),
			})
			assert.False(t, c.ManagesRoles())
			initAndVerify(ctx, t, c, mode == "dev")
			// tables are recreated by a second initialization
			initAndVerify(ctx, t, c, mode == "dev")
		})
	}
}

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "pkweb1", migrationuc.SchemaName(1))
}

func TestInitPostgres(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	defer func() {
		for i := len(dfrs) - 1; i >= 0; i-- {
			dfrs[i]()
		}
	}()
	if !ok {
		return // errors are already logged
	}
	u, err := url.Parse(pg.ConnectionString())
	require.NoError(t, err, "parsing DB container URL")
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err, "parsing DB container port")
	for _, mode := range []string{"dev", "prod"} {
		t.Run(mode, func(t *testing.T) {
			name := "pkweb_" + mode
			d := createEmptyDB(ctx, t, pool, port, name)
			c := newConfig(t, d)
			assert.True(t, c.ManagesRoles())
			initAndVerify(ctx, t, c, mode == "dev")
			_, err := os.Stat(filepath.Join(d.PassDir, ".pgpass.new"))
			assert.ErrorIs(t, err, os.ErrNotExist, "renewal finalized")
		})
	}
}

// createEmptyDB creates the `name` database and an admin role which
// owns it using the superuser connections of `pool`. The admin password
// is written in a .pgpass file and the returned settings point to it.
func createEmptyDB(
	ctx context.Context,
	t *testing.T,
	pool *gormdb.Pool,
	port int,
	name string,
) cfg1.Database {
	roleSuffix := repo.Role("_" + name)
	admin := repo.AdminRole + roleSuffix
	b := make([]byte, 8)
	_, err := rand.Read(b)
	require.NoError(t, err, "generating a random password")
	pass := fmt.Sprintf("%x", b)
	err = pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		// The DDL statements do not support parameterized queries,
		// nevertheless, the `name` and `admin` variables are trusted.
		if _, err := c.Exec(ctx, "CREATE DATABASE "+name); err != nil {
			return fmt.Errorf("creating %q database: %w", name, err)
		}
		// The password is hashed before being sent to DBMS, so it may
		// not leak even if it is recorded in some log file.
		hp, err := scram.SHA256().Hash(pass, "", 15000)
		if err != nil {
			return fmt.Errorf("computing scram hash: %w", err)
		}
		// SUPERUSER is required for creating and altering roles
		if _, err := c.Exec(ctx, fmt.Sprintf(
			"CREATE ROLE %s WITH SUPERUSER LOGIN PASSWORD '%s'",
			admin, hp,
		)); err != nil {
			return fmt.Errorf("creating %q role: %w", admin, err)
		}
		_, err = c.Exec(ctx, fmt.Sprintf(
			"GRANT ALL PRIVILEGES ON DATABASE %s TO %s", name, admin,
		))
		return err
	})
	require.NoError(t, err, "preparing %q database", name)
	dir := t.TempDir()
	line := fmt.Sprintf(
		"127.0.0.1:%d:%s:%s:%s\n", port, name, admin, pass,
	)
	err = os.WriteFile(filepath.Join(dir, ".pgpass"), []byte(line), 0o600)
	require.NoError(t, err, "writing .pgpass file")
	return cfg1.Database{
		Driver:     cfg1.DriverPostgres,
		Host:       "127.0.0.1",
		Port:       port,
		Name:       name,
		PassDir:    dir,
		RoleSuffix: roleSuffix,
	}
}
