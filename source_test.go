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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/envload/source"
)

func TestLookup_SourcePriority(t *testing.T) {
	t.Parallel()

	env := source.NewMap("env", map[string]string{"B": "2"})
	fallback := source.NewMap("fallback", map[string]string{"A": "1"})

	hit, err := Lookup(context.Background(), []Source{env, fallback}, []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, Hit{Value: "2", Key: "B", Source: "env", Rank: 0}, hit)
}

func TestLookup_KeyOrderWithinSource(t *testing.T) {
	t.Parallel()

	env := source.NewMap("env", map[string]string{"A": "1", "B": "2"})

	hit, err := Lookup(context.Background(), []Source{env}, []string{"B", "A"})
	require.NoError(t, err)
	assert.Equal(t, "B", hit.Key)
	assert.Equal(t, "2", hit.Value)
}

func TestLookup_FallsThroughToLowerSource(t *testing.T) {
	t.Parallel()

	env := source.NewMap("env", nil)
	fallback := source.NewMap("fallback", map[string]string{"A": "  spaced  "})

	hit, err := Lookup(context.Background(), []Source{env, fallback}, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, "spaced", hit.Value, "values are trimmed")
	assert.Equal(t, 1, hit.Rank)
	assert.Equal(t, "fallback", hit.Source)
}

func TestLookup_NotFound(t *testing.T) {
	t.Parallel()

	_, err := Lookup(context.Background(), []Source{source.NewMap("env", nil)}, []string{"A", "B"})
	require.ErrorIs(t, err, ErrNotFound)

	var re *RetrieveError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, []string{"A", "B"}, re.Keys)
	assert.Equal(t, "none of the keys (`A`, `B`) was found", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestLookup_InvalidUnicode(t *testing.T) {
	t.Parallel()

	env := source.NewMap("env", map[string]string{"A": "\xff"})

	_, err := Lookup(context.Background(), []Source{env}, []string{"A"})
	require.ErrorIs(t, err, ErrInvalidUnicode)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "key `A` in env contains invalid unicode")
}

func TestLookup_SourceFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")

	_, err := Lookup(context.Background(), []Source{TestSourceWithError(boom)}, []string{"A"})
	require.ErrorIs(t, err, ErrSourceFailed)
	require.ErrorIs(t, err, boom)
}
