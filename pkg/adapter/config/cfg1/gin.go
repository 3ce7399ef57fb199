// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"fmt"
	"time"

	"github.com/momeni/parking/pkg/adapter/config/settings"
	"github.com/momeni/parking/pkg/adapter/restful/gin"
)

// Default values of the Gin settings.
const (
	DefaultAddress         = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
)

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized and fill them by their default values
// using the ValidateAndNormalize method.
type Gin struct {
	Logger   *bool   // Whether to log the requests through slog
	Recovery *bool   // Whether to register the gin.Recovery() middleware
	Metrics  *bool   // Whether to serve the Prometheus /metrics route
	Address  *string // TCP address to listen on, like :8080

	// ShutdownTimeout is the graceful shutdown deadline of the server.
	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout"`
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// ValidateAndNormalize fills the missing Gin settings by their
// default values and rejects a negative shutdown timeout.
func (g *Gin) ValidateAndNormalize() error {
	settings.Nil2Zero(&g.Logger)
	settings.Nil2Zero(&g.Recovery)
	settings.Nil2Zero(&g.Metrics)
	addr := DefaultAddress
	settings.OverwriteNil(&g.Address, &addr)
	timeout := settings.Duration(DefaultShutdownTimeout)
	settings.OverwriteNil(&g.ShutdownTimeout, &timeout)
	if *g.ShutdownTimeout < 0 {
		return fmt.Errorf(
			"negative shutdown timeout: %v",
			time.Duration(*g.ShutdownTimeout),
		)
	}
	return nil
}
