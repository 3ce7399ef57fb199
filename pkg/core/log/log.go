// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package log is a thin layer over log/slog which takes typed
// slog.Attr values (see attrs.go) instead of loosely typed key/value
// pairs. All functions log through slog.Default, so the handler which
// is installed by the configuration (tint or JSON) decides the output.
//
// Use cases log with the request context, for example:
//
//	log.Info(ctx, "vehicle parked", slog.Int("slot", slot))
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Debug logs at slog.LevelDebug.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelDebug, msg, attrs)
}

// Info logs at slog.LevelInfo.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, msg, attrs)
}

// Warn logs at slog.LevelWarn.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, msg, attrs)
}

// Error logs at slog.LevelError.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, msg, attrs)
}

// emit must be called directly by one of the exported functions above,
// so the recorded source location belongs to their caller.
func emit(
	ctx context.Context, level slog.Level, msg string, attrs []slog.Attr,
) {
	l := slog.Default()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip up to the exported wrapper
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(ctx, r)
}
