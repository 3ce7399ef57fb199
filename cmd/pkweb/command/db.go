// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/momeni/parking/pkg/core/usecase/migrationuc"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used.`,
}

const credsRenewalMessage = `
For PostgreSQL databases, the admin role credentials are read from the
.pgpass file in the pass-dir folder (as specified in the config file).
Passwords of the admin and normal roles are renewed and written to the
.pgpass.new file, which is moved over .pgpass after a successful commit.
If an initialization fails abruptly, .pgpass.new is tried on the next
connection attempt. SQLite databases have no roles, so their tables are
recreated in the configured path file.`

// runInitDB loads the config file and passes an InitDBUseCase to f.
func runInitDB(
	f func(ctx context.Context, iduc *migrationuc.InitDBUseCase) error,
) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	return f(ctx, migrationuc.NewInitDB(c))
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
