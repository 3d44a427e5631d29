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
	"fmt"
	"reflect"
	"sync"
)

// Registry maps Go types to the schema nodes that resolve them. It is used
// to resolve values whose type is only known at run time, and by the struct
// tag front-end to find the node of a nested field.
//
// Registry is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu    sync.RWMutex
	nodes map[reflect.Type]Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[reflect.Type]Node)}
}

// DefaultRegistry is consulted by the struct tag front-end.
var DefaultRegistry = NewRegistry()

// Register adds node under its type.
//
// Errors:
//   - Returns error if a node is already registered for the type
func (r *Registry) Register(node Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.nodes[node.Type()]; ok {
		return fmt.Errorf("envload: node for %s already registered", node.Type())
	}
	r.nodes[node.Type()] = node
	return nil
}

// Lookup returns the node registered for t.
func (r *Registry) Lookup(t reflect.Type) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, ok := r.nodes[t]
	return node, ok
}

// Register adds node to DefaultRegistry.
func Register(node Node) error {
	return DefaultRegistry.Register(node)
}

// ResolveType resolves the node registered in reg for t.
//
// Errors:
//   - Returns error if no node is registered for t
//   - Returns the *Error of the resolve call otherwise
func (l *Loader) ResolveType(ctx context.Context, reg *Registry, t reflect.Type) (any, error) {
	node, ok := reg.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("envload: no node registered for %s", t)
	}
	return l.Resolve(ctx, node)
}
