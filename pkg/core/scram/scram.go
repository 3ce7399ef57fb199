// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the Hasher interface which is used for setting
// the PostgreSQL role passwords during the database initialization.
// Roles are created and their passwords are renewed using DDL queries
// which may be logged by the DBMS, so passwords are sent in the SCRAM
// stored format (as defined by RFC 5802 and RFC 7677) instead of their
// plaintext. The implementation resides in the adapter layer.
//
// SQLite databases have no roles and need no Hasher.
package scram

// Hasher computes the SCRAM stored form of passwords for a specific
// underlying hash function, e.g., SHA-256.
type Hasher interface {
	// Hash computes the stored form of the `pass` non-empty password
	// with the `iters` PBKDF2 iterations (at least 4096, while 15000
	// or more is recommended). The `salt` is base64 encoded and an
	// empty salt asks for a random one. The result has this format:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// It only contains printable ASCII letters and may be used in an
	// ALTER or CREATE ROLE query as the role password.
	Hash(pass, salt string, iters int) (string, error)
}
