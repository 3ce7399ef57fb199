// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the pkweb
// parking service. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions and
// the "config" sub-command prints the effective configuration.
//
//	./pkweb [-c /path/of/main/config.yaml]           # start web server
//	./pkweb db init-dev [-c /path/of/main/config.yaml]
//	./pkweb db init-prod [-c /path/of/main/config.yaml]
//	./pkweb config [-c /path/of/main/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/momeni/parking/pkg/adapter/config"
	"github.com/momeni/parking/pkg/adapter/config/cfg1"
	"github.com/momeni/parking/pkg/adapter/restful/gin/routes"
	"github.com/momeni/parking/pkg/core/log"
	"github.com/momeni/parking/pkg/core/repo"
	"github.com/momeni/parking/pkg/core/usecase/appuc"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "pkweb",
	Short: "A parking lots slot allocation and ticketing service",
	Long: `A parking lots slot allocation and ticketing service which
assigns the lowest numbered free slot of a lot to each entering vehicle,
opens a ticket for it, and charges it per started hour when it exits.
Lots, vehicles, and tickets are kept in a PostgreSQL or SQLite database
and are managed through a REST API. Parking metrics may be exported in
the Prometheus format.
Send SIGHUP in order to reload the use case settings from the config
file, and SIGINT or SIGTERM in order to shutdown gracefully.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

// loadConfig loads the config file and installs its logger as the
// default slog logger.
func loadConfig() (*cfg1.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.Log.Install(); err != nil {
		return nil, fmt.Errorf("installing logger: %w", err)
	}
	return c, nil
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	e := c.Gin.NewEngine()
	opts := routes.Options{Builder: c}
	if *c.Gin.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(
				collectors.ProcessCollectorOpts{},
			),
		)
		opts.Metrics = reg
	}
	app, err := routes.Register(e, p, opts)
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	go reloadOnHangup(ctx, app)

	srv := &http.Server{
		Addr:              *c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "serving REST APIs", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("serving REST APIs: %w", err)
	case <-ctx.Done():
	}
	timeout := time.Duration(*c.Gin.ShutdownTimeout)
	log.Info(
		ctx, "shutting down", slog.Duration("timeout", timeout),
	)
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err = srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving REST APIs: %w", err)
	}
	return nil
}

// reloadOnHangup reloads the config file whenever a SIGHUP is received
// and replaces the use case objects of app with fresh instances. The
// database and gin settings of the reloaded file are ignored.
func reloadOnHangup(ctx context.Context, app *appuc.UseCase) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
		}
		c, err := loadConfig()
		if err == nil {
			err = app.Reload(c)
		}
		if err != nil {
			log.Error(ctx, "reloading config failed", log.Err("err", err))
			continue
		}
		log.Info(ctx, "config is reloaded", slog.String("path", cfgPath))
	}
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
