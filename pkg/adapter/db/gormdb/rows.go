// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"database/sql"
	"fmt"
)

// rowsAdapter turns *sql.Rows into repo.Rows. Close errors surface
// through Err, as repo.Rows.Close returns nothing.
type rowsAdapter struct {
	*sql.Rows
}

func (ra rowsAdapter) Close() {
	_ = ra.Rows.Close()
}

// Values scans the current row without knowing its column types.
func (ra rowsAdapter) Values() ([]any, error) {
	cols, err := ra.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	vals := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := ra.Scan(dest...); err != nil {
		return nil, err
	}
	return vals, nil
}
