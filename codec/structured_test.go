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

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"APP_PORT": 8080,
		"database": map[string]any{
			"HOST": "db",
			"pool": map[any]any{"size": 4},
		},
		"TAGS":  []any{"a", "b", 3},
		"EMPTY": nil,
	}

	flat, err := Flatten(doc, "_")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"APP_PORT":           "8080",
		"database_HOST":      "db",
		"database_pool_size": "4",
		"TAGS":               "a,b,3",
		"EMPTY":              "",
	}, flat)
}

func TestFlatten_TableArraysRejected(t *testing.T) {
	t.Parallel()

	_, err := Flatten(map[string]any{"servers": []map[string]any{{"a": 1}}}, "_")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servers")
}

func TestStructuredCodecs_DecodeThenFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		codec Decoder
		data  string
	}{
		{
			name:  "yaml",
			codec: YAMLCodec{},
			data:  "APP_PORT: 8080\ndatabase:\n  HOST: db\nTAGS:\n  - a\n  - b\n",
		},
		{
			name:  "toml",
			codec: TOMLCodec{},
			data:  "APP_PORT = 8080\nTAGS = [\"a\", \"b\"]\n\n[database]\nHOST = \"db\"\n",
		},
		{
			name:  "json",
			codec: JSONCodec{},
			data:  `{"APP_PORT": 8080, "database": {"HOST": "db"}, "TAGS": ["a", "b"]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var doc map[string]any
			require.NoError(t, tt.codec.Decode([]byte(tt.data), &doc))

			flat, err := Flatten(doc, "_")
			require.NoError(t, err)
			assert.Equal(t, "8080", flat["APP_PORT"])
			assert.Equal(t, "db", flat["database_HOST"])
			assert.Equal(t, "a,b", flat["TAGS"])
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeDotenv, TypeJSON, TypeYAML, TypeTOML, TypeCaster} {
		_, err := GetDecoder(typ)
		require.NoError(t, err, "decoder %s", typ)
	}
	for _, typ := range []Type{TypeDotenv, TypeJSON, TypeYAML, TypeTOML} {
		_, err := GetEncoder(typ)
		require.NoError(t, err, "encoder %s", typ)
	}

	_, err := GetDecoder("ini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoder not found for type: ini")

	_, err = GetEncoder(TypeCaster)
	require.Error(t, err)

	assert.Contains(t, DecoderTypes(), TypeYAML)
}
