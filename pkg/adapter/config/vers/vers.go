// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers reads the versions block which heads every pkweb
// configuration file:
//
//	versions:
//	  database: 1.0.0
//	  config: 1.0.0
//
// The block is parsed before anything else, so the loader can pick
// the package (e.g., cfg1) which knows the remaining format and can
// reject a database schema which this binary was not built for.
package vers

import (
	"fmt"

	"github.com/momeni/parking/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config is meant to be inlined into each versioned configuration
// struct.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions of the configuration format and the database schema.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Marshalled mirrors Config with plain strings in place of the
// model.SemVer arrays. yaml.v3 only consults MarshalYAML on the top
// level value, so nested parts of a configuration expose a Marshal
// method returning such a mirror instead.
type Marshalled struct {
	Versions struct {
		Database string
		Config   string
	}
}

// Marshal returns the serializable mirror of vc.
func (vc *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Versions.Database = vc.Versions.Database.Marshal()
	m.Versions.Config = vc.Versions.Config.Marshal()
	return m
}

// Load extracts the versions block from a YAML document, ignoring
// all other keys.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate accepts a configuration version with the same major and
// a minor which is not newer than the given ones.
func (vc *Config) Validate(major, minor uint) error {
	switch v := vc.Versions.Config; {
	case v[0] != major:
		return fmt.Errorf("incompatible major version: %d", v[0])
	case v[1] > minor:
		return fmt.Errorf("unsupported minor version: %d", v[1])
	default:
		return nil
	}
}
