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
	"reflect"

	"rivaas.dev/envload/naming"
)

// Node is a resolvable schema node: a record or a tagged union. Nodes are
// immutable once built and safe for concurrent resolution.
type Node interface {
	// Type returns the Go type produced by resolving the node.
	Type() reflect.Type
	// Name returns the display name used in error paths.
	Name() string

	resolve(st *state, path string) (reflect.Value, error)
	describe(path string, out *[]Entry)
}

// ContainerSpec holds the naming policy shared by every field of a record,
// or by the discriminant and variants of a union.
type ContainerSpec struct {
	// Prefix is prepended to every key as Prefix+Delimiter.
	Prefix string
	// Suffix is appended to every key as Delimiter+Suffix.
	Suffix string
	// Delimiter joins prefix, name and suffix. Defaults to "_".
	Delimiter string
	// RenameAll applies a case style to the entire composed key. When set it
	// takes priority over the delimiter, which becomes a word boundary hint.
	RenameAll naming.Case
	// DotenvPath names a dotenv file loaded as the fallback source for this
	// node and everything below it. Records only.
	DotenvPath string
	// DiscriminantKeys are the keys the variant name is read from. Unions
	// only; defaults to the Go type name.
	DiscriminantKeys []string
}

func (c ContainerSpec) policy() naming.Policy {
	return naming.Policy{
		Prefix:    c.Prefix,
		Suffix:    c.Suffix,
		Delimiter: c.Delimiter,
		Case:      c.RenameAll,
	}
}

// DefaultCollectionDelimiter separates the elements of collection values.
const DefaultCollectionDelimiter = ","

// FieldSpec describes how one struct field is resolved.
//
// A field must declare at least one of Keys, Default, Nested or Ignore.
// Nested and Ignore exclude every other option.
type FieldSpec struct {
	// Name is the Go struct field name.
	Name string
	// Keys are the candidate names, tried in order after the container
	// policy has been applied.
	Keys []string
	// Default is used when no key is found, and, unless strict defaults
	// are enabled, when the found value fails to parse or validate.
	Default *DefaultSpec
	// Transform converts the parsed intermediate value to the field type.
	Transform *TransformSpec
	// ValidateBefore runs on the intermediate value, before Transform.
	ValidateBefore *ValidatorSpec
	// ValidateAfter runs on the final value.
	ValidateAfter *ValidatorSpec
	// Delimiter separates collection elements. Defaults to ",".
	Delimiter string
	// NoPrefix and NoSuffix suppress the container prefix and suffix.
	NoPrefix bool
	NoSuffix bool
	// Nested resolves the field as a whole node.
	Nested Node
	// Ignore leaves the field at its zero value.
	Ignore bool
}

// VariantSpec describes one variant of a tagged union.
type VariantSpec struct {
	// Name is the variant identifier, matched after the container policy
	// has been applied.
	Name string
	// Rename replaces Name as the primary match value.
	Rename string
	// Aliases are additional match values.
	Aliases []string
	// Default selects this variant when the discriminant is absent or
	// matches nothing. At most one variant may be the default.
	Default bool
	// NoPrefix and NoSuffix suppress the container prefix and suffix on
	// the match values.
	NoPrefix bool
	NoSuffix bool
	// Payload is resolved when the variant is selected. Its type must be
	// assignable to the union type.
	Payload Node
	// Unit is the value produced by a variant without payload. A nil Unit
	// produces the zero value of the union type.
	Unit any
}

func (v VariantSpec) names() []string {
	primary := v.Name
	if v.Rename != "" {
		primary = v.Rename
	}
	return append([]string{primary}, v.Aliases...)
}
