// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !integration

package envload

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/envload/naming"
)

type taggedDatabase struct {
	Host string `env:"host" default:"localhost"`
	Port uint16 `env:"port"`
}

func (taggedDatabase) EnvContainer() ContainerSpec {
	return ContainerSpec{Prefix: "db", RenameAll: naming.ScreamingSnake}
}

type taggedConfig struct {
	Port     uint16              `env:"PORT" default:"8080"`
	Hosts    []string            `env:"HOSTS,HOST" delim:";"`
	Timeout  time.Duration       `env:"" default:"30s"`
	Features map[string]struct{} `env:"FEATURES" envload:"noprefix"`
	Debug    *bool               `env:"DEBUG"`
	Database taggedDatabase      `envload:"nested"`
	Skipped  string              `envload:"ignore"`
	Untagged string
	internal string
}

func TestSpecFromTags(t *testing.T) {
	t.Parallel()

	specs, err := SpecFromTags[taggedConfig]()
	require.NoError(t, err)
	require.Len(t, specs, 7)

	assert.Equal(t, "Port", specs[0].Name)
	assert.Equal(t, []string{"PORT"}, specs[0].Keys)
	assert.Equal(t, "8080", specs[0].Default.String())

	assert.Equal(t, []string{"HOSTS", "HOST"}, specs[1].Keys)
	assert.Equal(t, ";", specs[1].Delimiter)

	assert.Equal(t, []string{"Timeout"}, specs[2].Keys, "empty env tag uses the field name")
	assert.True(t, specs[3].NoPrefix)
	assert.Nil(t, specs[4].Default)

	require.NotNil(t, specs[5].Nested)
	assert.Equal(t, reflect.TypeFor[taggedDatabase](), specs[5].Nested.Type())
	assert.True(t, specs[6].Ignore)
}

func TestFill(t *testing.T) {
	t.Parallel()

	l := TestLoaderWithVars(t, map[string]string{
		"APP_HOST":    "a;b",
		"APP_TIMEOUT": "1m",
		"FEATURES":    "x,y",
		"DB_PORT":     "5432",
		"APP_DEBUG":   "false",
	})

	cfg, err := Fill[taggedConfig](context.Background(), l, ContainerSpec{Prefix: "APP", RenameAll: naming.Upper})
	require.NoError(t, err)

	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, []string{"a", "b"}, cfg.Hosts)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, map[string]struct{}{"x": {}, "y": {}}, cfg.Features)
	require.NotNil(t, cfg.Debug)
	assert.False(t, *cfg.Debug)
	assert.Equal(t, taggedDatabase{Host: "localhost", Port: 5432}, cfg.Database)
}

func TestRecordFromTags_ContainerProvider(t *testing.T) {
	t.Parallel()

	r, err := RecordFromTags[taggedDatabase](ContainerSpec{})
	require.NoError(t, err)
	assert.Equal(t, "db", r.Container().Prefix)

	got := TestResolve[taggedDatabase](t, r, map[string]string{"DB_HOST": "db.internal", "DB_PORT": "1"})
	assert.Equal(t, taggedDatabase{Host: "db.internal", Port: 1}, got)
}

type recursive struct {
	Name string     `env:"NAME"`
	Next *recursive `envload:"nested"`
}

type badOption struct {
	Name string `env:"NAME" envload:"sometimes"`
}

type needsKeys struct {
	Name string `envload:"noprefix"`
}

type nestedScalar struct {
	Port int `envload:"nested"`
}

func TestSpecFromTags_Errors(t *testing.T) {
	t.Parallel()

	_, err := SpecFromTags[recursive]()
	require.ErrorIs(t, err, ErrUnsupportedTarget)

	_, err = SpecFromTags[badOption]()
	require.ErrorIs(t, err, ErrConflictingFlags)

	_, err = RecordFromTags[needsKeys](ContainerSpec{})
	require.ErrorIs(t, err, ErrNoValueSource)

	_, err = SpecFromTags[nestedScalar]()
	require.ErrorIs(t, err, ErrUnsupportedTarget)

	_, err = SpecFromTags[int]()
	require.ErrorIs(t, err, ErrUnsupportedTarget)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	dbSchema := MustRecord[database](ContainerSpec{}, FieldSpec{Name: "Port", Keys: []string{"PORT"}})

	require.NoError(t, reg.Register(dbSchema))
	require.Error(t, reg.Register(dbSchema))

	node, ok := reg.Lookup(reflect.TypeFor[database]())
	require.True(t, ok)
	assert.Same(t, dbSchema, node)

	l := TestLoaderWithVars(t, map[string]string{"PORT": "99"})
	v, err := l.ResolveType(context.Background(), reg, reflect.TypeFor[database]())
	require.NoError(t, err)
	assert.Equal(t, database{Port: 99}, v)

	_, err = l.ResolveType(context.Background(), reg, reflect.TypeFor[service]())
	require.Error(t, err)
}
