// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// When trying to serialize and write out settings, the latest known
// minor and patch version will be used since older versions (with the
// same major version) can ignore the extra fields too.
package cfg1

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/parking/pkg/adapter/config/settings"
	"github.com/momeni/parking/pkg/adapter/config/vers"
	"github.com/momeni/parking/pkg/adapter/db/gormdb/migration"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Names of the environment variables which override the settings which
// are read from a configuration file.
const (
	EnvGinAddress   = "PKWEB_GIN_ADDRESS"
	EnvLogLevel     = "PKWEB_LOG_LEVEL"
	EnvDatabasePath = "PKWEB_DATABASE_PATH"
)

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. It is preferred to implement Config with primitive fields
// or other structs which are defined locally, not models or structs
// which are defined in lower layers, so the configuration can be
// versioned and kept intact while other layers can change freely.
type Config struct {
	Database Database // Database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Log      Log      // Structured logging settings
	Usecases Usecases // Configuration settings for supported use cases

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"%s database ConnectionPool: %w", c.Database.Driver, err,
		)
	}
	return p, nil
}

// ManagesRoles reports if the configured database supports roles and
// schemas, i.e., it is a PostgreSQL database.
func (c *Config) ManagesRoles() bool {
	return c.Database.Driver == DriverPostgres
}

// NewSchemaRepo instantiates a fresh Schema repository.
// Role names may be optionally suffixed based on the settings and
// in that case, repo.Role role names which are passed to the
// ConnectionPool method or RenewPasswords will be suffixed
// automatically.
func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// SchemaInitializer creates a repo.SchemaInitializer instance which
// wraps the given transaction argument and can be used to initialize
// the database with development or production suitable data. The format
// of the created tables and their initial data rows are chosen based
// on the database schema version, as indicated by SchemaVersion method.
func (c *Config) SchemaInitializer(tx repo.Tx) (
	repo.SchemaInitializer, error,
) {
	return migration.NewInitializer(tx, c.SchemaVersion())
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in the .pgpass.new file, will use the change
// function in order to update the passwords of those roles in the
// database too. The returned finalizer moves .pgpass.new over the
// .pgpass file and should be called after a successful commitment.
func (c *Config) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// SchemaVersion returns the semantic version of the database schema
// which its connection information are kept by this Config struct.
// There is no direct dependency between the configuration file and
// database schema versions.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Lots Lots // lots use cases related settings
}

// Lots contains the configuration settings for the lots use cases.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized.
type Lots struct {
	// MaxCapacity limits the number of slots of each created lot.
	// A nil value asks the use cases layer to select a default value.
	MaxCapacity *int `yaml:"max-capacity,omitempty"`
	// MaxCapacityMaximum is the inclusive maximum acceptable value
	// for the MaxCapacity setting.
	// A missing value indicates that there is no upper bound.
	MaxCapacityMaximum *int `yaml:"max-capacity-maximum,omitempty"`
}

// Load unmarshals the data byte slice and loads a Config instance
// assuming that it contains the Config settings. Extra items in the
// data will be ignored and missing items will take their default
// values. Thereafter, environment variables may override some of
// the settings and finally the Config will be validated and normalized
// in order to ensure that provided settings are acceptable (for example
// the major version which is reported by data settings must match
// with number 1 which is the major version of this config package).
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	c.overrideByEnv()
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) overrideByEnv() {
	if addr, ok := os.LookupEnv(EnvGinAddress); ok {
		c.Gin.Address = &addr
	}
	if lvl, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = lvl
	}
	if path, ok := os.LookupEnv(EnvDatabasePath); ok {
		c.Database.Path = path
	}
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	if _, err := migration.LatestVersion(c.SchemaVersion()); err != nil {
		return fmt.Errorf("checking database schema version: %w", err)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Gin.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating gin settings: %w", err)
	}
	if err := c.Log.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating log settings: %w", err)
	}
	lots := &c.Usecases.Lots
	one := 1
	if err := settings.VerifyRange(
		&lots.MaxCapacity, &one, lots.MaxCapacityMaximum,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(max capacity=%v, maxb=%v): %w",
			err.Value, lots.MaxCapacityMaximum, err,
		)
	}
	return nil
}

// Marshalled struct contains a field for each one of the Config struct
// fields. The field names may be different for simplicity, but the
// yaml tag of fields are chosen to have consistent names after the
// serialization operation. The types of those fields are the same if
// their default serialization format is acceptable, otherwise, they
// will be serialized manually using the Marshal method and their
// target primitive types will be used in the Marshalled struct.
type Marshalled struct {
	Database Database
	Gin      struct {
		Logger          *bool
		Recovery        *bool
		Metrics         *bool
		Address         *string
		ShutdownTimeout *string `yaml:"shutdown-timeout,omitempty"`
	}
	Log      Log
	Usecases Usecases
	Vers     *vers.Marshalled `yaml:",inline"`
}

// MarshalYAML computes an instance of the Marshalled struct, as created
// by the Marshal method, so it may be marshalled instead of the `c`
// Config instance. This replacement makes it possible to substitute
// specific settings such as a slices of numbers in a vers.Config with
// their alternative primitive data types.
func (c *Config) MarshalYAML() (interface{}, error) {
	return c.Marshal(), nil
}

// Marshal creates an instance of the Marshalled struct and fills it
// with the `c` Config instance contents. Fields which require a custom
// encoding are replaced by primitive data types, recursively calling
// the Marshal method of those fields which are defined in other
// packages, so the marshaling logic stays near to the relevant types.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{
		Database: c.Database,
		Log:      c.Log,
		Usecases: c.Usecases,
		Vers:     c.Vers.Marshal(),
	}
	m.Gin.Logger = c.Gin.Logger
	m.Gin.Recovery = c.Gin.Recovery
	m.Gin.Metrics = c.Gin.Metrics
	m.Gin.Address = c.Gin.Address
	m.Gin.ShutdownTimeout = c.Gin.ShutdownTimeout.Marshal()
	return m
}

// Clone creates a new instance of Config and initializes its fields
// based on the `c` fields. Pointers are renewed too, so changes in
// the returned Config instance and `c` stay independent.
func (c *Config) Clone() *Config {
	cc := &Config{
		Database: c.Database,
		Log:      c.Log,
		Vers:     c.Vers,
	}
	settings.OverwriteUnconditionally(&cc.Gin.Logger, c.Gin.Logger)
	settings.OverwriteUnconditionally(&cc.Gin.Recovery, c.Gin.Recovery)
	settings.OverwriteUnconditionally(&cc.Gin.Metrics, c.Gin.Metrics)
	settings.OverwriteUnconditionally(&cc.Gin.Address, c.Gin.Address)
	settings.OverwriteUnconditionally(
		&cc.Gin.ShutdownTimeout, c.Gin.ShutdownTimeout,
	)
	settings.OverwriteUnconditionally(
		&cc.Usecases.Lots.MaxCapacity, c.Usecases.Lots.MaxCapacity,
	)
	settings.OverwriteUnconditionally(
		&cc.Usecases.Lots.MaxCapacityMaximum,
		c.Usecases.Lots.MaxCapacityMaximum,
	)
	return cc
}

// Version returns the semantic version of this Config struct contents
// which its major version is equal to 1, while its minor and patch
// versions may describe an older version.
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}
