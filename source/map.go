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
	"maps"
	"unicode/utf8"
)

// Map represents a source backed by a fixed set of key/value pairs.
// The map is copied on construction; later changes to the argument are not
// observed.
type Map struct {
	name   string
	values map[string]string
}

// NewMap creates a Map source with the given name and values.
func NewMap(name string, values map[string]string) *Map {
	return &Map{name: name, values: maps.Clone(values)}
}

// Name returns the source name used in error messages.
func (m *Map) Name() string {
	return m.name
}

// Len returns the number of keys held by the source.
func (m *Map) Len() int {
	return len(m.values)
}

// Lookup returns the value of key.
func (m *Map) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	if !ok {
		return "", false, nil
	}
	if !utf8.ValidString(v) {
		return "", true, ErrInvalidUnicode
	}
	return v, true, nil
}
