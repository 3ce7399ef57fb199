// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/momeni/parking/pkg/adapter/config/cfg1"
	"github.com/momeni/parking/pkg/core/usecase/appuc"
	"github.com/momeni/parking/pkg/core/usecase/migrationuc"
)

var (
	_ appuc.Builder        = (*cfg1.Config)(nil)
	_ migrationuc.Settings = (*cfg1.Config)(nil)
)

const minimalSQLite = `
database:
  driver: sqlite
  path: /tmp/pkweb.db
versions:
  database: 1.0.0
  config: 1.0.0
`

func TestLoadFillsDefaults(t *testing.T) {
	c, err := cfg1.Load([]byte(minimalSQLite))
	require.NoError(t, err)
	assert.False(t, c.ManagesRoles())
	assert.False(t, *c.Gin.Logger)
	assert.False(t, *c.Gin.Metrics)
	assert.Equal(t, cfg1.DefaultAddress, *c.Gin.Address)
	assert.Equal(
		t, cfg1.DefaultShutdownTimeout,
		time.Duration(*c.Gin.ShutdownTimeout),
	)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, cfg1.FormatTint, c.Log.Format)
	assert.Nil(t, c.Usecases.Lots.MaxCapacity)
}

func TestLoadPostgresDefaults(t *testing.T) {
	c, err := cfg1.Load([]byte(`
database:
  host: 127.0.0.1
  port: 5432
  name: pkweb
  pass-dir: /tmp
versions:
  database: 1.0.0
  config: 1.0.0
`))
	require.NoError(t, err)
	assert.True(t, c.ManagesRoles())
	assert.Equal(t, cfg1.DriverPostgres, c.Database.Driver)
	assert.Equal(t, "scram-sha-256", c.Database.AuthMethod)
	assert.NotNil(t, c.NewSchemaRepo())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(cfg1.EnvGinAddress, "127.0.0.1:9090")
	t.Setenv(cfg1.EnvLogLevel, "DEBUG")
	t.Setenv(cfg1.EnvDatabasePath, "/tmp/other.db")
	c, err := cfg1.Load([]byte(minimalSQLite))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", *c.Gin.Address)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "/tmp/other.db", c.Database.Path)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
	}{
		{"major version", "config: 1.0.0", "config: 2.0.0"},
		{"minor version", "config: 1.0.0", "config: 1.1.0"},
		{"schema version", "database: 1.0.0", "database: 3.0.0"},
		{"driver", "driver: sqlite", "driver: mysql"},
		{"sqlite path", "path: /tmp/pkweb.db", "path: ''"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := strings.Replace(minimalSQLite, tc.old, tc.new, 1)
			_, err := cfg1.Load([]byte(data))
			assert.Error(t, err)
		})
	}
	extras := map[string]string{
		"log level":  "log:\n  level: loud\n",
		"log format": "log:\n  format: xml\n",
		"capacity": "usecases:\n  lots:\n" +
			"    max-capacity: 200\n    max-capacity-maximum: 100\n",
		"zero capacity":    "usecases:\n  lots:\n    max-capacity: 0\n",
		"negative timeout": "gin:\n  shutdown-timeout: -1s\n",
	}
	for name, extra := range extras {
		t.Run(name, func(t *testing.T) {
			_, err := cfg1.Load([]byte(minimalSQLite + extra))
			assert.Error(t, err)
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	c, err := cfg1.Load([]byte(minimalSQLite +
		"gin:\n  shutdown-timeout: 90s\n"))
	require.NoError(t, err)
	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "shutdown-timeout: 1m30s")
	assert.Contains(t, string(out), "config: 1.0.0")

	c2, err := cfg1.Load(out)
	require.NoError(t, err)
	assert.Equal(t, c.Gin, c2.Gin)
	assert.Equal(t, c.Database.Path, c2.Database.Path)
}

func TestCloneIsIndependent(t *testing.T) {
	c, err := cfg1.Load([]byte(minimalSQLite +
		"usecases:\n  lots:\n    max-capacity: 50\n"))
	require.NoError(t, err)
	cc := c.Clone()
	*cc.Usecases.Lots.MaxCapacity = 60
	*cc.Gin.Logger = true
	assert.Equal(t, 50, *c.Usecases.Lots.MaxCapacity)
	assert.False(t, *c.Gin.Logger)
}

func TestVisibleSettings(t *testing.T) {
	c, err := cfg1.Load([]byte(minimalSQLite +
		"gin:\n  logger: true\n  metrics: true\n" +
		"usecases:\n  lots:\n    max-capacity: 50\n"))
	require.NoError(t, err)
	vs := c.VisibleSettings()
	require.NotNil(t, vs.ImmutableSettings)
	assert.True(t, vs.Logger)
	assert.True(t, vs.Metrics)
	require.NotNil(t, vs.Lots.MaxCapacity)
	assert.Equal(t, 50, *vs.Lots.MaxCapacity)
}

func TestLogNewHandler(t *testing.T) {
	l := cfg1.Log{Level: "warn", Format: cfg1.FormatJSON}
	require.NoError(t, l.ValidateAndNormalize())
	buf := &bytes.Buffer{}
	h, err := l.NewHandler(buf)
	require.NoError(t, err)
	logger := slog.New(h)
	logger.Info("hidden")
	logger.Warn("shown", slog.Int("slot", 3))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"slot":3`)

	tl := cfg1.Log{}
	require.NoError(t, tl.ValidateAndNormalize())
	buf.Reset()
	h, err = tl.NewHandler(buf)
	require.NoError(t, err)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}
