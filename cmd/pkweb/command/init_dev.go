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

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data,
i.e., five lots named lot0 to lot4 (each having 10 slots, 2 gates, and
an hourly rate of 20) and two registered vehicles, for the database
schema version which is specified in the configuration file.
` + credsRenewalMessage,
	RunE: initDev,
	Args: cobra.NoArgs,
}

func initDev(_ *cobra.Command, _ []string) error {
	return runInitDB(func(
		ctx context.Context, iduc *migrationuc.InitDBUseCase,
	) error {
		if err := iduc.InitDev(ctx); err != nil {
			return fmt.Errorf("initializing DB with dev data: %w", err)
		}
		return nil
	})
}

func init() {
	dbCmd.AddCommand(initDevCmd)
}
