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

package envload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/envload/codec"
	"rivaas.dev/envload/source"
)

// MockDumper is a test implementation of the Dumper interface.
type MockDumper struct {
	called bool
	pairs  []codec.Pair
	err    error
}

// Dump implements the Dumper interface for testing.
func (m *MockDumper) Dump(_ context.Context, pairs []codec.Pair) error {
	m.called = true
	m.pairs = pairs
	return m.err
}

// failingSource is a test source whose lookups always fail.
type failingSource struct {
	err error
}

func (f failingSource) Name() string { return "failing" }

func (f failingSource) Lookup(context.Context, string) (string, bool, error) {
	return "", false, f.err
}

// TestSource creates a static source for testing with the given variables.
func TestSource(vars map[string]string) Source {
	return source.NewMap("test", vars)
}

// TestSourceWithError creates a source whose lookups return err.
func TestSourceWithError(err error) Source {
	if err == nil {
		err = errors.New("test source failure")
	}
	return failingSource{err: err}
}

// TestDumper creates a mock dumper for testing.
func TestDumper() *MockDumper {
	return &MockDumper{}
}

// TestDumperWithError creates a mock dumper that returns an error on Dump.
func TestDumperWithError(err error) *MockDumper {
	return &MockDumper{err: err}
}

// TestLoader creates a new Loader with the given options for testing.
// It fails the test if creation fails.
func TestLoader(t *testing.T, opts ...Option) *Loader {
	t.Helper()
	l, err := New(opts...)
	require.NoError(t, err, "failed to create test loader")
	return l
}

// TestLoaderWithVars creates a Loader whose only source holds vars.
func TestLoaderWithVars(t *testing.T, vars map[string]string, opts ...Option) *Loader {
	t.Helper()
	return TestLoader(t, append([]Option{WithSource(TestSource(vars))}, opts...)...)
}

// TestDotenvFile creates a temporary dotenv file with the given content.
// The file is automatically cleaned up when the test completes.
func TestDotenvFile(t *testing.T, content string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(filePath, []byte(content), 0o600)
	require.NoError(t, err, "failed to create test dotenv file")
	return filePath
}

// TestResolve resolves node against vars and fails the test on error.
func TestResolve[T any](t *testing.T, node Node, vars map[string]string, opts ...Option) T {
	t.Helper()
	v, err := Load[T](context.Background(), TestLoaderWithVars(t, vars, opts...), node)
	require.NoError(t, err, "failed to resolve %s", node.Name())
	return v
}

// AssertResolveError resolves node against vars and asserts that it fails
// with an error matching target.
func AssertResolveError(t *testing.T, node Node, vars map[string]string, target error, opts ...Option) *Error {
	t.Helper()
	_, err := TestLoaderWithVars(t, vars, opts...).Resolve(context.Background(), node)
	require.ErrorIs(t, err, target)
	var root *Error
	require.ErrorAs(t, err, &root)
	return root
}
