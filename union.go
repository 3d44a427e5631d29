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
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// Union resolves a tagged union: a discriminant value read from the sources
// selects one variant, whose payload is then resolved. Build one with
// [NewUnion].
//
// The union type is usually an interface implemented by every payload type:
//
//	type Mode interface{ isMode() }
//
//	var modeSchema = envload.MustUnion[Mode](
//	    envload.ContainerSpec{RenameAll: naming.Upper, DiscriminantKeys: []string{"ENVIRONMENT"}},
//	    envload.VariantSpec{Name: "Production", Payload: productionSchema},
//	    envload.VariantSpec{Name: "Development", Payload: developmentSchema, Default: true},
//	)
type Union struct {
	typ      reflect.Type
	spec     ContainerSpec
	keys     []string
	variants []*variant
	def      *variant
}

type variant struct {
	name    string
	values  []string
	payload Node
	unit    reflect.Value
}

// NewUnion builds the schema for union type T.
//
// Errors:
//   - *SchemaError if the variants are empty, a match value is used twice,
//     more than one variant is the default, or a payload does not fit T
func NewUnion[T any](c ContainerSpec, variants ...VariantSpec) (*Union, error) {
	return newUnion(reflect.TypeFor[T](), c, variants)
}

// MustUnion is like NewUnion but panics on error.
func MustUnion[T any](c ContainerSpec, variants ...VariantSpec) *Union {
	u, err := NewUnion[T](c, variants...)
	if err != nil {
		panic(err.Error())
	}
	return u
}

func newUnion(typ reflect.Type, c ContainerSpec, specs []VariantSpec) (*Union, error) {
	if c.DotenvPath != "" {
		return nil, &SchemaError{Type: typ, Err: fmt.Errorf("%w: dotenv path on a union", ErrConflictingFlags)}
	}
	if c.RenameAll != "" && !c.RenameAll.Valid() {
		return nil, &SchemaError{Type: typ, Err: fmt.Errorf("%w: unknown case %q", ErrConflictingFlags, c.RenameAll)}
	}
	if len(specs) == 0 {
		return nil, &SchemaError{Type: typ, Err: ErrNoVariants}
	}

	raw := c.DiscriminantKeys
	if len(raw) == 0 {
		if typ.Name() == "" {
			return nil, &SchemaError{Type: typ, Err: fmt.Errorf("%w: unnamed union type needs discriminant keys", ErrUnsupportedTarget)}
		}
		raw = []string{typ.Name()}
	}

	policy := c.policy()
	u := &Union{typ: typ, spec: c, keys: policy.Keys(raw, false, false)}
	if dup := firstDuplicate(u.keys); dup != "" {
		return nil, &SchemaError{Type: typ, Err: fmt.Errorf("%w: discriminant %s", ErrDuplicateKey, dup)}
	}

	var used []string
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, &SchemaError{Type: typ, Err: errors.New("variant without name")}
		}
		v := &variant{name: spec.Name, payload: spec.Payload}
		for _, name := range spec.names() {
			value := policy.Key(name, spec.NoPrefix, spec.NoSuffix)
			if slices.Contains(used, value) {
				return nil, &SchemaError{Type: typ, Field: spec.Name, Err: fmt.Errorf("%w: variant name %s", ErrDuplicateKey, value)}
			}
			used = append(used, value)
			v.values = append(v.values, value)
		}

		switch {
		case spec.Payload != nil && spec.Unit != nil:
			return nil, &SchemaError{Type: typ, Field: spec.Name, Err: fmt.Errorf("%w: variant has both payload and unit value", ErrConflictingFlags)}
		case spec.Payload != nil:
			if !spec.Payload.Type().AssignableTo(typ) {
				return nil, &SchemaError{Type: typ, Field: spec.Name, Err: fmt.Errorf("%w: payload %s is not assignable to %s", ErrNodeType, spec.Payload.Type(), typ)}
			}
		case spec.Unit != nil:
			uv := reflect.ValueOf(spec.Unit)
			if !uv.Type().AssignableTo(typ) {
				return nil, &SchemaError{Type: typ, Field: spec.Name, Err: fmt.Errorf("%w: unit %T is not assignable to %s", ErrNodeType, spec.Unit, typ)}
			}
			v.unit = uv
		}

		if spec.Default {
			if u.def != nil {
				return nil, &SchemaError{Type: typ, Field: spec.Name, Err: ErrMultipleDefaults}
			}
			u.def = v
		}
		u.variants = append(u.variants, v)
	}
	return u, nil
}

// Type returns the union type.
func (u *Union) Type() reflect.Type {
	return u.typ
}

// Name returns the union type name.
func (u *Union) Name() string {
	return typeName(u.typ)
}

// Keys returns the composed discriminant keys.
func (u *Union) Keys() []string {
	return slices.Clone(u.keys)
}

func (u *Union) resolve(st *state, path string) (reflect.Value, error) {
	hit, err := st.lookup(path, u.keys)
	if err != nil {
		if errors.Is(err, ErrNotFound) && u.def != nil {
			return u.produce(st, path, u.def, "default")
		}
		return reflect.Value{}, wrap(path, err)
	}

	for _, v := range u.variants {
		if slices.Contains(v.values, hit.Value) {
			return u.produce(st, path, v, "matched")
		}
	}
	if u.def != nil {
		return u.produce(st, path, u.def, "default")
	}
	return reflect.Value{}, wrap(path, &EnumError{Union: u.Name(), Value: hit.Value, Keys: u.keys})
}

func (u *Union) produce(st *state, path string, v *variant, reason string) (reflect.Value, error) {
	st.logger.Debug("variant selected", "path", path, "variant", v.name, "reason", reason)

	out := reflect.New(u.typ).Elem()
	switch {
	case v.payload != nil:
		pv, err := v.payload.resolve(st, path+"."+v.name)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Set(pv)
	case v.unit.IsValid():
		out.Set(v.unit)
	}
	return out, nil
}
