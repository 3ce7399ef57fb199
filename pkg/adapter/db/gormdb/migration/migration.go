// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration is the top-level database schema package which
// acts as a facade for all supported database schema versions.
// The NewInitializer and LatestVersion functions can be used to find
// out the latest supported minor version for each major version and
// create its schema initializer object.
package migration

import (
	"fmt"

	"github.com/momeni/parking/pkg/adapter/db/gormdb/migration/stlmig1"
	"github.com/momeni/parking/pkg/core/model"
	"github.com/momeni/parking/pkg/core/repo"
)

// LatestVersion returns the latest supported database schema version
// within the major version of the given `v` semantic version.
// If the minor version of `v` argument is beyond the supported database
// schema versions, an error will be returned.
func LatestVersion(v model.SemVer) (lv model.SemVer, err error) {
	switch major := v[0]; major {
	case 1:
		if minor := v[1]; minor > stlmig1.Minor {
			err = fmt.Errorf("unsupported minor: %d", minor)
			return
		}
		lv = model.SemVer{1, stlmig1.Minor, stlmig1.Patch}

	default:
		err = fmt.Errorf("unsupported major: %d", major)
	}
	return
}

// NewInitializer creates a database schema initializer instance for the
// given `v` semantic version. A repo.SchemaInitializer can be used for
// filling an existing (and empty) database schema with the development
// or production suitable initial data.
//
// The returned instance wraps the `tx` transaction argument and
// uses it for creation and initialization of tables. The caller remains
// responsible to commit that transaction.
func NewInitializer(tx repo.Tx, v model.SemVer) (
	repo.SchemaInitializer, error,
) {
	switch major := v[0]; major {
	case 1:
		if minor := v[1]; minor > stlmig1.Minor {
			return nil, fmt.Errorf("unsupported minor: %d", minor)
		}
		return stlmig1.New(tx), nil
	default:
		return nil, fmt.Errorf("unsupported major: %d", major)
	}
}
