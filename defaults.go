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
	"math"
	"reflect"

	"github.com/spf13/cast"
)

type defaultKind int

const (
	defaultZero defaultKind = iota + 1
	defaultLiteral
	defaultValue
	defaultSupplier
)

// DefaultSpec describes the value a field takes when its keys are absent.
// Build one with [Zero], [Literal], [Value] or [Supplier].
type DefaultSpec struct {
	kind     defaultKind
	value    any
	supplier reflect.Value
	args     []any
}

// Zero defaults to the zero value of the field type. Maps and slices are
// empty but non-nil; optional fields are left absent.
func Zero() *DefaultSpec {
	return &DefaultSpec{kind: defaultZero}
}

// Literal defaults to v converted to the field type. Strings are parsed the
// same way raw source values are, so Literal("a,b") fills a []string and
// Literal("30s") fills a time.Duration. Numbers are converted with range
// checking. Conversion failures are reported as a *ConvertError at resolve
// time.
func Literal(v any) *DefaultSpec {
	return &DefaultSpec{kind: defaultLiteral, value: v}
}

// Value defaults to v as is. The type of v must be assignable to the field
// type, or to its element type for optional fields.
func Value(v any) *DefaultSpec {
	return &DefaultSpec{kind: defaultValue, value: v}
}

// Supplier defaults to the result of calling fn with args. fn must return
// one value, optionally followed by an error. It is called on every resolve
// that needs the default.
func Supplier(fn any, args ...any) *DefaultSpec {
	return &DefaultSpec{kind: defaultSupplier, supplier: reflect.ValueOf(fn), args: args}
}

// String describes the default for templates. Suppliers have no static
// representation and render as "".
func (d *DefaultSpec) String() string {
	switch d.kind {
	case defaultLiteral, defaultValue:
		if d.value == nil {
			return ""
		}
		return formatValue(reflect.ValueOf(d.value), DefaultCollectionDelimiter)
	}
	return ""
}

// check validates the default against the field type at build time. ft is
// the declared field type and vt the value type (ft without the optional
// pointer).
func (d *DefaultSpec) check(ft, vt reflect.Type) error {
	switch d.kind {
	case defaultZero, defaultLiteral:
		return nil
	case defaultValue:
		if d.value == nil {
			if nillable(ft) {
				return nil
			}
			return fmt.Errorf("%w: nil default for %s", ErrHookType, ft)
		}
		if !fits(reflect.TypeOf(d.value), ft, vt) {
			return fmt.Errorf("%w: default of type %T for %s", ErrHookType, d.value, ft)
		}
		return nil
	case defaultSupplier:
		return d.checkSupplier(ft, vt)
	}
	return fmt.Errorf("%w: empty default", ErrHookType)
}

var errorType = reflect.TypeFor[error]()

func (d *DefaultSpec) checkSupplier(ft, vt reflect.Type) error {
	fn := d.supplier
	if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() {
		return fmt.Errorf("%w: supplier is not a function", ErrHookType)
	}
	ftype := fn.Type()
	if ftype.IsVariadic() {
		if len(d.args) < ftype.NumIn()-1 {
			return fmt.Errorf("%w: supplier takes at least %d arguments, got %d", ErrHookType, ftype.NumIn()-1, len(d.args))
		}
	} else if ftype.NumIn() != len(d.args) {
		return fmt.Errorf("%w: supplier takes %d arguments, got %d", ErrHookType, ftype.NumIn(), len(d.args))
	}
	for i, arg := range d.args {
		in := argType(ftype, i)
		if arg == nil {
			if !nillable(in) {
				return fmt.Errorf("%w: supplier argument %d cannot be nil", ErrHookType, i)
			}
			continue
		}
		if !reflect.TypeOf(arg).AssignableTo(in) {
			return fmt.Errorf("%w: supplier argument %d is %T, want %s", ErrHookType, i, arg, in)
		}
	}
	switch {
	case ftype.NumOut() == 1:
	case ftype.NumOut() == 2 && ftype.Out(1) == errorType:
	default:
		return fmt.Errorf("%w: supplier must return a value and an optional error", ErrHookType)
	}
	if !fits(ftype.Out(0), ft, vt) {
		return fmt.Errorf("%w: supplier returns %s, field is %s", ErrHookType, ftype.Out(0), ft)
	}
	return nil
}

func argType(ftype reflect.Type, i int) reflect.Type {
	if ftype.IsVariadic() && i >= ftype.NumIn()-1 {
		return ftype.In(ftype.NumIn() - 1).Elem()
	}
	return ftype.In(i)
}

// resolve produces the default value for a field of type ft.
func (d *DefaultSpec) resolve(p *parser, field string, ft, vt reflect.Type, delim string) (reflect.Value, error) {
	switch d.kind {
	case defaultZero:
		return zeroValue(ft), nil
	case defaultLiteral:
		v, err := convertLiteral(p, d.value, vt, delim)
		if err != nil {
			return reflect.Value{}, &ConvertError{Field: field, Type: vt, Err: err}
		}
		return fit(v, ft, vt), nil
	case defaultValue:
		if d.value == nil {
			return reflect.Zero(ft), nil
		}
		return fit(reflect.ValueOf(d.value), ft, vt), nil
	case defaultSupplier:
		args := make([]reflect.Value, len(d.args))
		for i, arg := range d.args {
			if arg == nil {
				args[i] = reflect.Zero(argType(d.supplier.Type(), i))
				continue
			}
			args[i] = reflect.ValueOf(arg)
		}
		out := d.supplier.Call(args)
		if len(out) == 2 && !out[1].IsNil() {
			return reflect.Value{}, &ConvertError{Field: field, Type: ft, Err: out[1].Interface().(error)}
		}
		return fit(out[0], ft, vt), nil
	}
	return reflect.Value{}, &ConvertError{Field: field, Type: ft, Err: errors.New("empty default")}
}

// convertLiteral converts a literal default to t.
func convertLiteral(p *parser, lit any, t reflect.Type, delim string) (reflect.Value, error) {
	if lit == nil {
		return reflect.Value{}, errors.New("nil literal")
	}
	lv := reflect.ValueOf(lit)
	if lv.Type().AssignableTo(t) {
		v := reflect.New(t).Elem()
		v.Set(lv)
		return v, nil
	}
	if s, ok := lit.(string); ok {
		if !p.supports(t) {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedTarget, t)
		}
		return p.parse(s, t, delim)
	}

	switch lv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return convertNumber(lit, lv, t)
	}
	if lv.Type().ConvertibleTo(t) && lv.Kind() == t.Kind() {
		return lv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", lit, t)
}

func convertNumber(lit any, lv reflect.Value, t reflect.Type) (reflect.Value, error) {
	isFloat := lv.Kind() == reflect.Float32 || lv.Kind() == reflect.Float64
	v := reflect.New(t).Elem()

	var fl float64

	// named number types go through their base kind
	switch {
	case isFloat:
		fl = lv.Float()
		lit = fl
	case isUnsignedKind(lv.Kind()):
		lit = lv.Uint()
	default:
		lit = lv.Int()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if isFloat && fl != math.Trunc(fl) {
			return reflect.Value{}, fmt.Errorf("%v is not an integer", lit)
		}
		// float64(math.MaxInt64) rounds up to 2^63
		if isFloat && (fl < math.MinInt64 || fl >= math.MaxInt64) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", lit, t)
		}
		n, err := cast.ToInt64E(lit)
		if err != nil {
			return reflect.Value{}, err
		}
		if (isUnsignedKind(lv.Kind()) && lv.Uint() > math.MaxInt64) || v.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", lit, t)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if isFloat && fl != math.Trunc(fl) {
			return reflect.Value{}, fmt.Errorf("%v is not an integer", lit)
		}
		if isFloat && (fl < 0 || fl >= math.MaxUint64) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", lit, t)
		}
		n, err := cast.ToUint64E(lit)
		if err != nil {
			return reflect.Value{}, err
		}
		if v.OverflowUint(n) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", lit, t)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(lit)
		if err != nil {
			return reflect.Value{}, err
		}
		if v.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", lit, t)
		}
		v.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("cannot convert %T to %s", lit, t)
	}
	return v, nil
}

func isUnsignedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// zeroValue is the additive identity of t: empty collections rather than nil
// ones, nil for optional values.
func zeroValue(t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Map:
		return reflect.MakeMap(t)
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0)
	}
	return reflect.Zero(t)
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// fits reports whether a value of type src can fill a field of type ft,
// either directly or wrapped as an optional vt.
func fits(src, ft, vt reflect.Type) bool {
	return src.AssignableTo(ft) || (ft != vt && src.AssignableTo(vt))
}

// fit places v into a value of type ft, wrapping it in a pointer when the
// field is optional and v is the bare value.
func fit(v reflect.Value, ft, vt reflect.Type) reflect.Value {
	if !v.IsValid() {
		return reflect.Zero(ft)
	}
	if v.Type().AssignableTo(ft) {
		out := reflect.New(ft).Elem()
		out.Set(v)
		return out
	}
	ptr := reflect.New(vt)
	ptr.Elem().Set(v)
	return ptr
}
