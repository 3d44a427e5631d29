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
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"rivaas.dev/envload/codec"
)

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	urlType             = reflect.TypeFor[url.URL]()
	durationType        = reflect.TypeFor[time.Duration]()
	timeType            = reflect.TypeFor[time.Time]()
	emptyStructType     = reflect.TypeFor[struct{}]()
)

// Converter parses a raw value into a value of a specific type.
type Converter func(raw string) (any, error)

// parser turns raw strings into typed values. Scalars are tried in this
// order: registered converters, time.Duration and time.Time, url.URL,
// encoding.TextUnmarshaler, then the built-in kinds. Slices, sets
// (map[K]struct{}) and maps are split on a delimiter and parsed element by
// element.
type parser struct {
	converters map[reflect.Type]Converter
}

func (p *parser) isScalar(t reflect.Type) bool {
	if _, ok := p.converters[t]; ok {
		return true
	}
	switch {
	case t == durationType, t == timeType, t == urlType:
		return true
	case reflect.PointerTo(t).Implements(textUnmarshalerType):
		return true
	case t.Kind() == reflect.Pointer:
		return p.isScalar(t.Elem())
	}
	return codec.Castable(t)
}

// supports reports whether values of type t can be parsed at all.
func (p *parser) supports(t reflect.Type) bool {
	if p.isScalar(t) {
		return true
	}
	switch t.Kind() {
	case reflect.Slice:
		return p.isScalar(t.Elem())
	case reflect.Map:
		if !p.isScalar(t.Key()) {
			return false
		}
		return t.Elem() == emptyStructType || p.isScalar(t.Elem())
	}
	return false
}

// parse converts raw into a value of type t. delim separates collection
// elements and defaults to ",".
func (p *parser) parse(raw string, t reflect.Type, delim string) (reflect.Value, error) {
	raw = strings.TrimSpace(raw)
	if delim == "" {
		delim = DefaultCollectionDelimiter
	}

	if !p.isScalar(t) {
		switch {
		case t.Kind() == reflect.Slice:
			return p.sequence(raw, t, delim)
		case t.Kind() == reflect.Map && t.Elem() == emptyStructType:
			return p.set(raw, t, delim)
		case t.Kind() == reflect.Map:
			return p.mapping(raw, t, delim)
		}
	}

	v, err := p.scalar(raw, t)
	if err != nil {
		return reflect.Value{}, &ParseError{Reason: ErrUnexpectedValueType, Token: raw, Err: err}
	}
	return v, nil
}

func (p *parser) scalar(raw string, t reflect.Type) (reflect.Value, error) {
	if conv, ok := p.converters[t]; ok {
		out, err := conv(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.ValueOf(out)
		if !rv.IsValid() || !rv.Type().AssignableTo(t) {
			return reflect.Value{}, fmt.Errorf("converter for %s returned %T", t, out)
		}
		v := reflect.New(t).Elem()
		v.Set(rv)
		return v, nil
	}

	switch {
	case t == durationType, t == timeType:
		return codec.Cast(raw, t)
	case t == urlType:
		u, err := url.Parse(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(u).Elem(), nil
	case reflect.PointerTo(t).Implements(textUnmarshalerType):
		v := reflect.New(t)
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, err
		}
		return v.Elem(), nil
	case t.Kind() == reflect.Pointer:
		inner, err := p.scalar(raw, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(inner)
		return ptr, nil
	}

	return codec.Cast(raw, t)
}

func (p *parser) sequence(raw string, t reflect.Type, delim string) (reflect.Value, error) {
	parts := strings.Split(raw, delim)
	out := reflect.MakeSlice(t, 0, len(parts))
	for _, part := range parts {
		v, err := p.element(part, t.Elem(), ErrUnexpectedValueType)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

func (p *parser) set(raw string, t reflect.Type, delim string) (reflect.Value, error) {
	parts := strings.Split(raw, delim)
	out := reflect.MakeMapWithSize(t, len(parts))
	present := reflect.Zero(emptyStructType)
	for _, part := range parts {
		v, err := p.element(part, t.Key(), ErrUnexpectedValueType)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(v, present)
	}
	return out, nil
}

func (p *parser) mapping(raw string, t reflect.Type, delim string) (reflect.Value, error) {
	parts := strings.Split(raw, delim)
	out := reflect.MakeMapWithSize(t, len(parts))
	for _, part := range parts {
		k, v, ok := strings.Cut(part, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		switch {
		case !ok:
			return reflect.Value{}, &ParseError{Reason: ErrMissingValue}
		case k == "" && v == "":
			return reflect.Value{}, &ParseError{Reason: ErrUnexpectedEqualSign}
		case k == "":
			return reflect.Value{}, &ParseError{Reason: ErrMissingKey}
		}

		key, err := p.element(k, t.Key(), ErrUnexpectedKeyType)
		if err != nil {
			return reflect.Value{}, err
		}
		val, err := p.element(v, t.Elem(), ErrUnexpectedValueType)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(key, val)
	}
	return out, nil
}

// element parses one trimmed collection element. An empty element is a
// missing value; a conversion failure is reported with reason.
func (p *parser) element(raw string, t reflect.Type, reason error) (reflect.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return reflect.Value{}, &ParseError{Reason: ErrMissingValue}
	}
	v, err := p.scalar(raw, t)
	if err != nil {
		return reflect.Value{}, &ParseError{Reason: reason, Token: raw, Err: err}
	}
	return v, nil
}
