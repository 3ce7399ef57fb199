// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database initialization use case.
// The InitDBUseCase creates the pkweb schema tables and fills them with
// the development or production suitable data. For PostgreSQL targets,
// it also (re)creates the schema, the normal role, and renews the roles
// passwords using the admin role.
// This package also exposes the Settings interface which represents the
// expectations from a configuration file representation type, so it
// can be taken uniformly in the use cases layer.
package migrationuc
