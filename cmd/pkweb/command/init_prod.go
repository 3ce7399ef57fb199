// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momeni/parking/pkg/core/usecase/migrationuc"
)

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
i.e., empty lots, vehicles, and tickets tables, for the database schema
version which is specified in the configuration file. The database
connection information are also read from the config file.
` + credsRenewalMessage + `

For PostgreSQL, the tables are created in the pkwebX schema (X being the
schema major version) which must be either non-existent or empty.`,
	RunE: initProd,
	Args: cobra.NoArgs,
}

func initProd(_ *cobra.Command, _ []string) error {
	return runInitDB(func(
		ctx context.Context, iduc *migrationuc.InitDBUseCase,
	) error {
		if err := iduc.InitProd(ctx); err != nil {
			return fmt.Errorf("initializing DB with prod data: %w", err)
		}
		return nil
	})
}

func init() {
	dbCmd.AddCommand(initProdCmd)
}
