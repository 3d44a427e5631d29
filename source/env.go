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

package source

import (
	"context"
	"errors"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUnicode is returned by Lookup when a key exists but its value is
// not valid UTF-8.
var ErrInvalidUnicode = errors.New("value is not valid unicode")

// LookupFunc reads a single variable. It matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Env represents a source that reads process environment variables.
// Lookups observe the environment at the time of the call.
type Env struct {
	name   string
	lookup LookupFunc
}

// NewEnv creates an Env source backed by os.LookupEnv.
func NewEnv() *Env {
	return &Env{name: "env", lookup: os.LookupEnv}
}

// NewEnvFunc creates an Env source backed by an arbitrary lookup function.
// This is useful for tests and for read-only views of another environment.
func NewEnvFunc(name string, lookup LookupFunc) *Env {
	return &Env{name: name, lookup: lookup}
}

// NewEnvSnapshot creates an Env source from a list of "KEY=VALUE" entries as
// returned by os.Environ. Entries without "=" are ignored and later entries
// win.
func NewEnvSnapshot(environ []string) *Env {
	vars := make(map[string]string, len(environ))
	for _, entry := range environ {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	return &Env{name: "env", lookup: func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}}
}

// Name returns the source name used in error messages.
func (e *Env) Name() string {
	return e.name
}

// Lookup returns the value of key.
//
// Errors:
//   - ErrInvalidUnicode if the variable exists but is not valid UTF-8
func (e *Env) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := e.lookup(key)
	if !ok {
		return "", false, nil
	}
	if !utf8.ValidString(v) {
		return "", true, ErrInvalidUnicode
	}
	return v, true, nil
}
