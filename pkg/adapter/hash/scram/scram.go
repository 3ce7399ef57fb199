// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram hashes the PostgreSQL role passwords in the SCRAM
// stored format, so the pkweb admin and normal role passwords can be
// set without sending their plaintext in the DDL queries. Mechanisms
// are selected by the database auth-method setting using ForMethod.
package scram

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/xdg-go/scram"
)

// Authentication method names, as they appear in the config file.
const (
	MethodSHA1   = "scram-sha-1"
	MethodSHA256 = "scram-sha-256"

	// DefaultMethod is used when no auth-method is configured.
	DefaultMethod = MethodSHA256
)

// MinIters is the minimum accepted hashing iterations count.
const MinIters = 4096

var b64 = base64.StdEncoding

// Mechanism hashes passwords using a fixed underlying hash algorithm.
// It implements the scram.Hasher interface of the core layer using
// the github.com/xdg-go/scram module.
type Mechanism struct {
	hashGenerator scram.HashGeneratorFcn
	keyLen        int // bytes
	name          string
}

// SHA1 returns a SCRAM-SHA-1 Mechanism.
func SHA1() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA1,
		keyLen:        160 / 8,
		name:          "SCRAM-SHA-1",
	}
}

// SHA256 returns a SCRAM-SHA-256 Mechanism.
func SHA256() *Mechanism {
	return &Mechanism{
		hashGenerator: scram.SHA256,
		keyLen:        256 / 8,
		name:          "SCRAM-SHA-256",
	}
}

// ForMethod returns the Mechanism of the `method` authentication
// method name. An empty method selects the DefaultMethod.
func ForMethod(method string) (*Mechanism, error) {
	switch method {
	case MethodSHA1:
		return SHA1(), nil
	case "", MethodSHA256:
		return SHA256(), nil
	default:
		return nil, fmt.Errorf(
			"unsupported authentication method: %q", method,
		)
	}
}

// Name returns the mechanism name, like SCRAM-SHA-256.
func (m *Mechanism) Name() string {
	return m.name
}

// Hash computes the stored form of the `pass` password with the
// following format which PostgreSQL accepts in CREATE/ALTER ROLE.
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// An empty `salt` is replaced by a random one with the hash length.
// Otherwise, it must be base64 encoded. The iters must be at least
// MinIters.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	if iters < MinIters {
		return "", fmt.Errorf("iters (%d) is less than %d", iters, MinIters)
	}
	if salt == "" {
		raw := make([]byte, m.keyLen)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		salt = b64.EncodeToString(raw)
	}
	rawSalt, err := b64.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding base64 salt: %w", err)
	}
	// NewClient normalizes pass with SASLprep. The username does not
	// affect the stored keys.
	c, err := m.hashGenerator.NewClient("pkweb", pass, "")
	if err != nil {
		return "", fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(rawSalt),
		Iters: iters,
	})
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name, iters, salt,
		b64.EncodeToString(sc.StoredKey),
		b64.EncodeToString(sc.ServerKey),
	), nil
}
