// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Supported log formats.
const (
	FormatTint = "tint"
	FormatJSON = "json"
	FormatText = "text"
)

// Log contains the structured logging settings.
type Log struct {
	Level  string // debug, info (default), warn, or error
	Format string // tint (default), json, or text
}

// ValidateAndNormalize fills the default log level and format and
// rejects unknown values.
func (l *Log) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	l.Level = strings.ToLower(l.Level)
	if _, err := l.level(); err != nil {
		return err
	}
	switch l.Format {
	case "":
		l.Format = FormatTint
	case FormatTint, FormatJSON, FormatText:
	default:
		return fmt.Errorf("unsupported log format: %q", l.Format)
	}
	return nil
}

func (l Log) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return lvl, fmt.Errorf("parsing log level: %w", err)
	}
	return lvl, nil
}

// NewHandler creates a slog.Handler which writes to `w` using the
// configured format and level. The tint handler colorizes its output
// only if `w` is a terminal.
func (l Log) NewHandler(w io.Writer) (slog.Handler, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, err
	}
	switch l.Format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lvl,
		}), nil
	case FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: lvl,
		}), nil
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if err, ok := a.Value.Any().(error); ok {
				return tint.Err(err)
			}
			return a
		},
	}), nil
}

// Install sets the default slog logger, so it writes to stderr based
// on the `l` settings.
func (l Log) Install() error {
	h, err := l.NewHandler(os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
