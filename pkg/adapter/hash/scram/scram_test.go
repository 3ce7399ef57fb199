// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momeni/parking/pkg/adapter/hash/scram"
	scrami "github.com/momeni/parking/pkg/core/scram"
)

var _ scrami.Hasher = (*scram.Mechanism)(nil)

func TestForMethod(t *testing.T) {
	for method, name := range map[string]string{
		"":                  "SCRAM-SHA-256",
		scram.MethodSHA256: "SCRAM-SHA-256",
		scram.MethodSHA1:   "SCRAM-SHA-1",
	} {
		m, err := scram.ForMethod(method)
		require.NoError(t, err, "method=%q", method)
		assert.Equal(t, name, m.Name())
	}
	_, err := scram.ForMethod("md5")
	assert.Error(t, err)
}

func TestHash(t *testing.T) {
	m := scram.SHA256()
	salt := "c2FsdHlzYWx0"
	h1, err := m.Hash("secret", salt, 4096)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h1, "SCRAM-SHA-256$4096:"+salt+"$"))
	h2, err := m.Hash("secret", salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "same salt gives same hash")

	h3, err := m.Hash("secret", "", 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "random salt")
	assert.Len(t, strings.Split(h3, "$"), 3)

	_, err = m.Hash("", salt, 4096)
	assert.Error(t, err)
	_, err = m.Hash("secret", salt, 100)
	assert.Error(t, err)
	_, err = m.Hash("secret", "not base64!", 4096)
	assert.Error(t, err)
}
