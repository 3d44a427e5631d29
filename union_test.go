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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/envload/naming"
)

type deployMode interface{ isDeployMode() }

type production struct{ APIPort uint16 }

type staging struct{ APIPort uint16 }

type local struct{}

func (production) isDeployMode() {}
func (staging) isDeployMode()    {}
func (local) isDeployMode()      {}

type logFormat string

type environment struct {
	Mode   deployMode
	Format logFormat
}

func modeSchemas(t *testing.T) (*Record, *Record) {
	t.Helper()

	prod, err := NewRecord[production](
		ContainerSpec{Prefix: "PRODUCTION", RenameAll: naming.ScreamingSnake},
		FieldSpec{Name: "APIPort", Keys: []string{"api_port"}},
	)
	require.NoError(t, err)
	stage, err := NewRecord[staging](
		ContainerSpec{Prefix: "STAGING", RenameAll: naming.ScreamingSnake},
		FieldSpec{Name: "APIPort", Keys: []string{"api_port"}, Default: Literal(8001)},
	)
	require.NoError(t, err)
	return prod, stage
}

func TestUnion_SelectsVariant(t *testing.T) {
	t.Parallel()

	prod, stage := modeSchemas(t)
	mode := MustUnion[deployMode](
		ContainerSpec{RenameAll: naming.Upper, DiscriminantKeys: []string{"ENVIRONMENT"}},
		VariantSpec{Name: "Production", Payload: prod},
		VariantSpec{Name: "Staging", Payload: stage, Aliases: []string{"stage"}},
		VariantSpec{Name: "Local", Unit: local{}},
	)
	vars := map[string]string{
		"PRODUCTION_API_PORT": "8000",
		"STAGING_API_PORT":    "9000",
	}

	tests := []struct {
		name         string
		discriminant string
		want         deployMode
	}{
		{name: "renamed variant name", discriminant: "PRODUCTION", want: production{APIPort: 8000}},
		{name: "alias", discriminant: "STAGE", want: staging{APIPort: 9000}},
		{name: "unit variant", discriminant: "LOCAL", want: local{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := map[string]string{"ENVIRONMENT": tt.discriminant}
			for k, v := range vars {
				env[k] = v
			}
			got := TestResolve[deployMode](t, mode, env)
			assert.Equal(t, tt.want, got)
		})
	}

	root := AssertResolveError(t, mode, map[string]string{"ENVIRONMENT": "production"}, ErrNoVariant)
	assert.Equal(t, KindEnum, root.Kind)
	assert.Contains(t, root.Error(), `"production"`)

	AssertResolveError(t, mode, nil, ErrNotFound)

	root = AssertResolveError(t, mode, map[string]string{"ENVIRONMENT": "PRODUCTION"}, ErrNotFound)
	assert.Equal(t, "deployMode.Production.APIPort", root.Path)
}

func TestUnion_DefaultVariant(t *testing.T) {
	t.Parallel()

	prod, stage := modeSchemas(t)
	mode := MustUnion[deployMode](
		ContainerSpec{RenameAll: naming.Upper, DiscriminantKeys: []string{"ENVIRONMENT"}},
		VariantSpec{Name: "Production", Payload: prod},
		VariantSpec{Name: "Staging", Payload: stage, Default: true},
	)

	got := TestResolve[deployMode](t, mode, map[string]string{"ENVIRONMENT": "UNKNOWN"})
	assert.Equal(t, staging{APIPort: 8001}, got)

	got = TestResolve[deployMode](t, mode, nil)
	assert.Equal(t, staging{APIPort: 8001}, got)
}

func TestUnion_DefaultDiscriminantKey(t *testing.T) {
	t.Parallel()

	format := MustUnion[logFormat](
		ContainerSpec{Prefix: "log", RenameAll: naming.ScreamingSnake},
		VariantSpec{Name: "json", Unit: logFormat("json"), NoPrefix: true},
		VariantSpec{Name: "text", Unit: logFormat("text"), NoPrefix: true, Default: true},
	)
	assert.Equal(t, []string{"LOG_LOG_FORMAT"}, format.Keys())

	got := TestResolve[logFormat](t, format, map[string]string{"LOG_LOG_FORMAT": "JSON"})
	assert.Equal(t, logFormat("json"), got)
}

func TestUnion_NestedInRecord(t *testing.T) {
	t.Parallel()

	prod, stage := modeSchemas(t)
	mode := MustUnion[deployMode](
		ContainerSpec{RenameAll: naming.Upper, DiscriminantKeys: []string{"MODE"}},
		VariantSpec{Name: "Production", Payload: prod},
		VariantSpec{Name: "Staging", Payload: stage},
	)
	schema := MustRecord[environment](
		ContainerSpec{},
		FieldSpec{Name: "Mode", Nested: mode},
		FieldSpec{Name: "Format", Keys: []string{"FORMAT"}, Default: Literal("text")},
	)

	got := TestResolve[environment](t, schema, map[string]string{"MODE": "STAGING"})
	assert.Equal(t, environment{Mode: staging{APIPort: 8001}, Format: "text"}, got)

	root := AssertResolveError(t, schema, map[string]string{"MODE": "DEV"}, ErrNoVariant)
	assert.Equal(t, "environment.Mode", root.Path)
}

func TestNewUnion_Errors(t *testing.T) {
	t.Parallel()

	prod, _ := modeSchemas(t)
	dbSchema := MustRecord[database](ContainerSpec{}, FieldSpec{Name: "Port", Keys: []string{"PORT"}})

	tests := []struct {
		name      string
		container ContainerSpec
		variants  []VariantSpec
		wantErr   error
	}{
		{
			name:    "no variants",
			wantErr: ErrNoVariants,
		},
		{
			name:      "names collide after renaming",
			container: ContainerSpec{RenameAll: naming.Lower},
			variants:  []VariantSpec{{Name: "Prod", Payload: prod}, {Name: "Other", Aliases: []string{"PROD"}, Unit: local{}}},
			wantErr:   ErrDuplicateKey,
		},
		{
			name:     "two defaults",
			variants: []VariantSpec{{Name: "A", Unit: local{}, Default: true}, {Name: "B", Unit: local{}, Default: true}},
			wantErr:  ErrMultipleDefaults,
		},
		{
			name:     "payload not assignable",
			variants: []VariantSpec{{Name: "DB", Payload: dbSchema}},
			wantErr:  ErrNodeType,
		},
		{
			name:     "unit not assignable",
			variants: []VariantSpec{{Name: "A", Unit: 1}},
			wantErr:  ErrNodeType,
		},
		{
			name:     "payload and unit",
			variants: []VariantSpec{{Name: "A", Payload: prod, Unit: local{}}},
			wantErr:  ErrConflictingFlags,
		},
		{
			name:      "dotenv on union",
			container: ContainerSpec{DotenvPath: ".env"},
			variants:  []VariantSpec{{Name: "A", Unit: local{}}},
			wantErr:   ErrConflictingFlags,
		},
		{
			name:      "duplicate discriminant keys",
			container: ContainerSpec{RenameAll: naming.Upper, DiscriminantKeys: []string{"mode", "MODE"}},
			variants:  []VariantSpec{{Name: "A", Unit: local{}}},
			wantErr:   ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewUnion[deployMode](tt.container, tt.variants...)
			require.ErrorIs(t, err, tt.wantErr)

			var se *SchemaError
			require.ErrorAs(t, err, &se)
		})
	}

	assert.Panics(t, func() { MustUnion[deployMode](ContainerSpec{}) })
}
