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

package source

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_Lookup(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"APP_PORT":  "8080",
		"APP_EMPTY": "",
		"APP_BAD":   "\xff\xfe",
	}
	env := NewEnvFunc("test", func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})

	tests := []struct {
		name      string
		key       string
		wantValue string
		wantFound bool
		wantErr   error
	}{
		{name: "present", key: "APP_PORT", wantValue: "8080", wantFound: true},
		{name: "present but empty", key: "APP_EMPTY", wantValue: "", wantFound: true},
		{name: "absent", key: "APP_MISSING"},
		{name: "invalid unicode", key: "APP_BAD", wantFound: true, wantErr: ErrInvalidUnicode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, found, err := env.Lookup(context.Background(), tt.key)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantValue, v)
			assert.Equal(t, tt.wantFound, found)
		})
	}

	assert.Equal(t, "test", env.Name())
}

func TestEnv_Process(t *testing.T) {
	t.Setenv("ENVLOAD_SOURCE_TEST", "value")

	env := NewEnv()
	assert.Equal(t, "env", env.Name())

	v, found, err := env.Lookup(context.Background(), "ENVLOAD_SOURCE_TEST")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", v)

	require.NoError(t, os.Unsetenv("ENVLOAD_SOURCE_TEST"))
	_, found, err = env.Lookup(context.Background(), "ENVLOAD_SOURCE_TEST")
	require.NoError(t, err)
	assert.False(t, found, "lookups must observe the current environment")
}

func TestEnvSnapshot(t *testing.T) {
	t.Parallel()

	env := NewEnvSnapshot([]string{"A=1", "B=x=y", "MALFORMED", "A=2", "EMPTY="})

	v, found, err := env.Lookup(context.Background(), "A")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "2", v)

	v, _, _ = env.Lookup(context.Background(), "B")
	assert.Equal(t, "x=y", v)

	_, found, _ = env.Lookup(context.Background(), "MALFORMED")
	assert.False(t, found)

	v, found, _ = env.Lookup(context.Background(), "EMPTY")
	assert.True(t, found)
	assert.Empty(t, v)
}

func TestMap_Lookup(t *testing.T) {
	t.Parallel()

	values := map[string]string{"KEY": "value", "BAD": "\xc3\x28"}
	m := NewMap("static", values)
	values["KEY"] = "changed"

	assert.Equal(t, "static", m.Name())
	assert.Equal(t, 2, m.Len())

	v, found, err := m.Lookup(context.Background(), "KEY")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", v, "map must be copied on construction")

	_, found, err = m.Lookup(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = m.Lookup(context.Background(), "BAD")
	require.ErrorIs(t, err, ErrInvalidUnicode)
}
