// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/parking/pkg/adapter/db/gormdb"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/parking/pkg/adapter/hash/scram"
	"github.com/momeni/parking/pkg/core/log"
	"github.com/momeni/parking/pkg/core/repo"
	scrami "github.com/momeni/parking/pkg/core/scram"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Database contains the database related configuration settings.
// The Host, Port, Name, PassDir, RoleSuffix, and AuthMethod fields are
// only used by the postgres driver, while the Path field is only used
// by the sqlite driver.
type Database struct {
	Driver  string // postgres (default) or sqlite
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like pkweb1_0_0
	PassDir string `yaml:"pass-dir,omitempty"` // path of the passwords dir
	Path    string `yaml:",omitempty"`         // path of the sqlite file

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. In the parallel test cases, it is required to create
	// multiple non-colliding roles in the same database cluster and
	// so having a unique (per test) role suffix helps with parallelism.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies the database authentication method name.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	// hasher is instantiated based on the AuthMethod and is used by
	// the NewSchemaRepo method, so Schema repo instances may hash
	// passwords properly (as expected by the DBMS).
	hasher scrami.Hasher `yaml:"-"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
//
// For the sqlite driver, the `r` role is ignored and d.Path file is
// opened (and created if missing).
//
// For the postgres driver, the .pgpass file in the d.PassDir folder is
// checked which should conform with the pgpass format with lines like:
//
//	host:port:dbname:role:password
//
// If a database connection could not be established, passwords might
// have been updated during a previous incomplete initialization. So the
// .pgpass.new file in the same d.PassDir folder is checked too. If a
// connection could be established with it, the .pgpass.new will be
// moved to the .pgpass file.
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	if d.Driver == DriverSQLite {
		p, err := gormdb.NewSQLitePool(ctx, d.Path)
		if err != nil {
			return nil, fmt.Errorf("opening %q: %w", d.Path, err)
		}
		return p, nil
	}
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := gormdb.NewPostgresPool(ctx, u)
	if err == nil {
		return p, nil
	}
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	log.Warn(
		ctx, "retrying connection with the new pass-file",
		log.Err("err", err),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = gormdb.NewPostgresPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. The password is
// read from the given `path` file which may contain empty or commented
// lines in addition to the pgpass formatted lines.
// Returned URL has the postgresql scheme.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", fmt.Errorf("no matching password line")
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// NewSchemaRepo instantiates a fresh Schema repository which suffixes
// the role names by `d.RoleSuffix` and hashes their passwords based on
// the `d.AuthMethod` setting. ValidateAndNormalize must be called
// beforehand, so the hasher instance is prepared.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in the .pgpass.new file (in the `d.PassDir`
// directory), will use the `change` function in order to update the
// passwords of those `roles` in the database too. The returned
// finalizer moves the .pgpass.new file over the .pgpass file.
//
// The `d.RoleSuffix` will be appended to the given role names too.
// The `change` function must add the same suffix to `roles` roles names
// in order to remain consistent with the in-file recorded information.
func (d Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	p := make([]byte, enc.EncodedLen(len(b))) // for each password
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(passwords))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		enc.Encode(p, b)
		passwords[i] = string(p)
		r = r + d.RoleSuffix
		lines[i] = fmt.Sprintf("%s:%s:%s\n", prfx, r, passwords[i])
	}
	orgPath := filepath.Join(d.PassDir, ".pgpass")
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	finalizer = func() error {
		return os.Rename(newPath, orgPath)
	}
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return finalizer, nil
}

// ValidateAndNormalize validates the database settings and returns an
// error if they were not acceptable. It also fills the default driver
// and authentication method and prepares the passwords hasher.
func (d *Database) ValidateAndNormalize() error {
	switch d.Driver {
	case "":
		d.Driver = DriverPostgres
	case DriverPostgres:
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("sqlite database path is empty")
		}
		return nil
	default:
		return fmt.Errorf("unsupported database driver: %q", d.Driver)
	}
	h, err := scram.ForMethod(d.AuthMethod)
	if err != nil {
		return fmt.Errorf("validating auth-method: %w", err)
	}
	if d.AuthMethod == "" {
		d.AuthMethod = scram.DefaultMethod
	}
	d.hasher = h
	return nil
}
