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
)

// TransformSpec converts a parsed intermediate value into the field type.
// Build one with [Transform] or [TransformE].
type TransformSpec struct {
	in  reflect.Type
	out reflect.Type
	fn  func(reflect.Value) (reflect.Value, error)
}

// Transform returns a hook that parses the raw value as A and converts it to
// T with fn.
func Transform[A, T any](fn func(A) T) *TransformSpec {
	return &TransformSpec{
		in:  reflect.TypeFor[A](),
		out: reflect.TypeFor[T](),
		fn: func(v reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf(fn(v.Interface().(A))), nil
		},
	}
}

// TransformE is like [Transform] but fn may fail. A failure is reported as a
// parse error.
func TransformE[A, T any](fn func(A) (T, error)) *TransformSpec {
	out := reflect.TypeFor[T]()
	return &TransformSpec{
		in:  reflect.TypeFor[A](),
		out: out,
		fn: func(v reflect.Value) (reflect.Value, error) {
			t, err := fn(v.Interface().(A))
			if err != nil {
				return reflect.Value{}, err
			}
			rv := reflect.New(out).Elem()
			rv.Set(reflect.ValueOf(&t).Elem())
			return rv, nil
		},
	}
}

// In returns the intermediate type the raw value is parsed into.
func (t *TransformSpec) In() reflect.Type { return t.in }

// Out returns the produced type.
func (t *TransformSpec) Out() reflect.Type { return t.out }

func (t *TransformSpec) apply(v reflect.Value) (reflect.Value, error) {
	out, err := t.fn(v)
	if err != nil {
		return reflect.Value{}, err
	}
	// fn(A) T with an interface T may return a nil interface
	if !out.IsValid() {
		return reflect.Zero(t.out), nil
	}
	if out.Type() != t.out {
		rv := reflect.New(t.out).Elem()
		rv.Set(out)
		return rv, nil
	}
	return out, nil
}

// ValidatorSpec checks a value of a fixed type. Build one with [Validate].
type ValidatorSpec struct {
	typ reflect.Type
	fn  func(reflect.Value) error
}

// Validate returns a hook that checks values of type T with fn.
func Validate[T any](fn func(T) error) *ValidatorSpec {
	return &ValidatorSpec{
		typ: reflect.TypeFor[T](),
		fn: func(v reflect.Value) error {
			return fn(v.Interface().(T))
		},
	}
}

// Type returns the type the validator accepts.
func (v *ValidatorSpec) Type() reflect.Type { return v.typ }

func checkHookType(what string, got, want reflect.Type) error {
	if got != want {
		return fmt.Errorf("%w: %s takes %s, field value is %s", ErrHookType, what, got, want)
	}
	return nil
}
