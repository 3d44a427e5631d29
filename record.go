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
	"fmt"
	"reflect"
	"slices"
)

// Record resolves a struct field by field. Build one with [NewRecord].
type Record struct {
	typ    reflect.Type
	spec   ContainerSpec
	fields []*field
}

// NewRecord builds the schema for struct type T. Fields are resolved in the
// order given; struct fields without a spec keep their zero value.
//
// Errors:
//   - *SchemaError describing the first invalid field or container option
func NewRecord[T any](c ContainerSpec, fields ...FieldSpec) (*Record, error) {
	return newRecord(reflect.TypeFor[T](), c, fields)
}

// MustRecord is like NewRecord but panics on error. Use it for package level
// schema variables.
func MustRecord[T any](c ContainerSpec, fields ...FieldSpec) *Record {
	r, err := NewRecord[T](c, fields...)
	if err != nil {
		panic(err.Error())
	}
	return r
}

func newRecord(typ reflect.Type, c ContainerSpec, specs []FieldSpec) (*Record, error) {
	if typ.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: typ, Err: fmt.Errorf("%w: records must be structs", ErrUnsupportedTarget)}
	}
	if len(c.DiscriminantKeys) > 0 {
		return nil, &SchemaError{Type: typ, Err: fmt.Errorf("%w: discriminant keys on a record", ErrConflictingFlags)}
	}
	if c.RenameAll != "" && !c.RenameAll.Valid() {
		return nil, &SchemaError{Type: typ, Err: fmt.Errorf("%w: unknown case %q", ErrConflictingFlags, c.RenameAll)}
	}

	r := &Record{typ: typ, spec: c, fields: make([]*field, 0, len(specs))}
	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Name] {
			return nil, &SchemaError{Type: typ, Field: spec.Name, Err: fmt.Errorf("%w: field declared twice", ErrConflictingFlags)}
		}
		seen[spec.Name] = true

		f, err := r.compile(spec)
		if err != nil {
			return nil, &SchemaError{Type: typ, Field: spec.Name, Err: err}
		}
		r.fields = append(r.fields, f)
	}
	return r, nil
}

func (r *Record) compile(spec FieldSpec) (*field, error) {
	sf, ok := r.typ.FieldByName(spec.Name)
	if !ok || !sf.IsExported() {
		return nil, ErrUnknownField
	}

	f := &field{
		name:  spec.Name,
		index: sf.Index,
		typ:   sf.Type,
		vt:    sf.Type,
		delim: spec.Delimiter,
		spec:  spec,
	}
	if sf.Type.Kind() == reflect.Pointer {
		f.optional = true
		f.vt = sf.Type.Elem()
	}
	f.inter = f.vt

	hooks := spec.Transform != nil || spec.ValidateBefore != nil || spec.ValidateAfter != nil
	switch {
	case spec.Ignore:
		if spec.Nested != nil || len(spec.Keys) > 0 || spec.Default != nil || hooks {
			return nil, fmt.Errorf("%w: ignored field declares other options", ErrConflictingFlags)
		}
		return f, nil
	case spec.Nested != nil:
		if len(spec.Keys) > 0 || spec.Default != nil || hooks || spec.Delimiter != "" {
			return nil, fmt.Errorf("%w: nested field declares value options", ErrConflictingFlags)
		}
		if nt := spec.Nested.Type(); nt != f.typ && nt != f.vt {
			return nil, fmt.Errorf("%w: node produces %s, field is %s", ErrNodeType, nt, f.typ)
		}
		return f, nil
	case len(spec.Keys) == 0 && spec.Default == nil:
		return nil, ErrNoValueSource
	}

	if spec.Delimiter == "=" {
		return nil, ErrInvalidDelimiter
	}

	f.keys = r.spec.policy().Keys(spec.Keys, spec.NoPrefix, spec.NoSuffix)
	if dup := firstDuplicate(f.keys); dup != "" {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, dup)
	}

	if t := spec.Transform; t != nil {
		if err := checkHookType("transform", t.out, f.vt); err != nil {
			return nil, err
		}
		f.inter = t.in
	}
	if v := spec.ValidateBefore; v != nil {
		if err := checkHookType("validate-before", v.typ, f.inter); err != nil {
			return nil, err
		}
	}
	if v := spec.ValidateAfter; v != nil {
		if err := checkHookType("validate-after", v.typ, f.vt); err != nil {
			return nil, err
		}
	}
	if d := spec.Default; d != nil {
		if err := d.check(f.typ, f.vt); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Type returns the struct type produced by the record.
func (r *Record) Type() reflect.Type {
	return r.typ
}

// Name returns the struct type name.
func (r *Record) Name() string {
	return typeName(r.typ)
}

// Container returns the naming policy of the record.
func (r *Record) Container() ContainerSpec {
	return r.spec
}

func (r *Record) resolve(st *state, path string) (reflect.Value, error) {
	st, err := st.withDotenv(r.spec.DotenvPath)
	if err != nil {
		return reflect.Value{}, wrap(path, err)
	}

	out := reflect.New(r.typ).Elem()
	for _, f := range r.fields {
		if f.spec.Ignore {
			continue
		}
		fpath := path + "." + f.name

		var v reflect.Value
		if f.spec.Nested != nil {
			v, err = f.spec.Nested.resolve(st, fpath)
			if err == nil {
				v = fit(v, f.typ, f.vt)
			}
		} else {
			v, err = f.resolve(st, fpath)
		}
		if err != nil {
			return reflect.Value{}, wrap(fpath, err)
		}
		out.FieldByIndex(f.index).Set(v)
	}
	return out, nil
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func firstDuplicate(keys []string) string {
	for i, k := range keys {
		if slices.Contains(keys[:i], k) {
			return k
		}
	}
	return ""
}
