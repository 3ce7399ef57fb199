// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine construction, so the config
// package may create an engine with the configured middlewares without
// depending on the gin-gonic package itself. The resources packages
// (named like lotsrs) adapt the use cases to the REST APIs and are
// registered by the routes package.
package gin

import (
	"log/slog"

	ginslogger "github.com/FabienMht/ginslog/logger"
	"github.com/gin-gonic/gin"
)

// HandlerFunc is a gin-gonic middleware or request handler.
type HandlerFunc = gin.HandlerFunc

// Engine is the gin-gonic engine which serves the REST APIs.
type Engine = gin.Engine

// New creates an engine which uses the given middlewares in order.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a request logging middleware which writes through
// slog.Default, so requests are formatted by the configured handler
// (e.g., tint) like all other logs. It must be called after the log
// settings are installed.
func Logger() HandlerFunc {
	return ginslogger.New(slog.Default())
}

// Recovery returns the gin-gonic panic recovery middleware.
func Recovery() HandlerFunc {
	return gin.Recovery()
}
