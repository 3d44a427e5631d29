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
	"reflect"
)

// field is a compiled FieldSpec.
type field struct {
	name     string
	index    []int
	typ      reflect.Type // declared type
	vt       reflect.Type // typ without the optional pointer
	inter    reflect.Type // type the raw value is parsed into
	optional bool
	keys     []string // composed lookup keys
	delim    string
	spec     FieldSpec
}

// resolve looks the field up, runs the pipeline and applies the default.
// An absent optional field without default resolves to nil.
func (f *field) resolve(st *state, path string) (reflect.Value, error) {
	if len(f.keys) == 0 {
		return f.useDefault(st, path, "no keys")
	}

	hit, err := st.lookup(path, f.keys)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound) && f.spec.Default != nil:
			return f.useDefault(st, path, "not found")
		case errors.Is(err, ErrNotFound) && f.optional:
			return reflect.Zero(f.typ), nil
		case errors.Is(err, ErrInvalidUnicode) && f.spec.Default != nil && !st.strict:
			return f.useDefault(st, path, err.Error())
		}
		return reflect.Value{}, err
	}

	v, err := f.pipeline(st, path, hit.Value)
	if err != nil {
		if f.spec.Default != nil && !st.strict {
			return f.useDefault(st, path, err.Error())
		}
		return reflect.Value{}, err
	}
	return v, nil
}

// pipeline runs parse, validate-before, transform and validate-after on a
// found value, in that order.
func (f *field) pipeline(st *state, path, raw string) (reflect.Value, error) {
	v, err := st.parser.parse(raw, f.inter, f.delim)
	if err != nil {
		return reflect.Value{}, err
	}

	if hook := f.spec.ValidateBefore; hook != nil {
		if err := hook.fn(v); err != nil {
			return reflect.Value{}, &ValidationError{Field: path, Err: err}
		}
	}

	if t := f.spec.Transform; t != nil {
		v, err = t.apply(v)
		if err != nil {
			return reflect.Value{}, &ParseError{Reason: ErrParseFailed, Token: raw, Err: err}
		}
	}

	if hook := f.spec.ValidateAfter; hook != nil {
		if err := hook.fn(v); err != nil {
			return reflect.Value{}, &ValidationError{Field: path, Err: err}
		}
	}

	return fit(v, f.typ, f.vt), nil
}

func (f *field) useDefault(st *state, path, reason string) (reflect.Value, error) {
	v, err := f.spec.Default.resolve(st.parser, path, f.typ, f.vt, f.delim)
	if err != nil {
		return reflect.Value{}, err
	}
	st.logger.Debug("default used", "path", path, "reason", reason)
	return v, nil
}
