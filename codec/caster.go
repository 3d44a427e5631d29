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

package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// TypeCaster is the codec type of the scalar caster.
const TypeCaster Type = "caster"

// ErrUnsupportedCast is returned by [Cast] for target types it cannot produce.
var ErrUnsupportedCast = errors.New("unsupported cast target")

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

func init() {
	RegisterDecoder(TypeCaster, CasterCodec{})
}

// CasterCodec decodes a single raw value into the scalar pointed to by v.
// The target type selects the conversion:
//
//	var port uint16
//	err := codec.CasterCodec{}.Decode([]byte("8080"), &port)
type CasterCodec struct{}

// Decode casts data into the value pointed to by v.
func (CasterCodec) Decode(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("CasterCodec.Decode: expected non-nil pointer, got %T", v)
	}

	out, err := Cast(string(data), rv.Elem().Type())
	if err != nil {
		return err
	}
	rv.Elem().Set(out)
	return nil
}

// Castable reports whether [Cast] can produce values of type t.
func Castable(t reflect.Type) bool {
	if t == durationType || t == timeType {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Cast converts raw into a value of type t. Sized integer and float targets
// are range checked, so "300" does not silently wrap into a uint8.
// Integers are plain decimal with an optional sign: "010" is 10, and
// "0x1F" or "1.0" are rejected.
func Cast(raw string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	if raw == "" && t.Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("cannot cast empty string to %s", t)
	}

	switch t {
	case durationType:
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(int64(d))
		return out, nil
	case timeType:
		tm, err := cast.ToTimeE(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Set(reflect.ValueOf(tm))
		return out, nil
	}

	switch t.Kind() {
	case reflect.String:
		out.SetString(raw)
	case reflect.Bool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, intError(raw, t, err)
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(strings.TrimPrefix(raw, "+"), 10, t.Bits())
		if err != nil {
			return reflect.Value{}, intError(raw, t, err)
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("value %s overflows %s", raw, t)
		}
		out.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedCast, t)
	}

	return out, nil
}

// intError reports a failed base 10 integer parse.
func intError(raw string, t reflect.Type, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("value %s overflows %s", raw, t)
	}
	return fmt.Errorf("unable to cast %q to %s: not a decimal integer", raw, t)
}
