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

//go:build !integration

package envload

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want string
		is   []error
	}{
		{
			name: "not found",
			err:  &RetrieveError{Reason: ErrNotFound, Keys: []string{"A", "B"}},
			want: "none of the keys (`A`, `B`) was found",
			is:   []error{ErrNotFound},
		},
		{
			name: "source failed",
			err:  &RetrieveError{Reason: ErrSourceFailed, Key: "A", Source: "consul", Err: cause},
			want: "source consul failed for key `A`: boom",
			is:   []error{ErrSourceFailed, cause},
		},
		{
			name: "missing value",
			err:  &ParseError{Reason: ErrMissingValue},
			want: "key-value pair has no value",
			is:   []error{ErrMissingValue},
		},
		{
			name: "unexpected key type",
			err:  &ParseError{Reason: ErrUnexpectedKeyType, Token: "x", Err: cause},
			want: "key `x` is of unexpected type",
			is:   []error{ErrUnexpectedKeyType, cause},
		},
		{
			name: "parse failed",
			err:  &ParseError{Reason: ErrParseFailed, Err: cause},
			want: "parsing failed: boom",
			is:   []error{ErrParseFailed, cause},
		},
		{
			name: "validation",
			err:  &ValidationError{Field: "cfg.Port", Err: cause},
			want: "validation failed for `cfg.Port`: boom",
			is:   []error{ErrValidation, cause},
		},
		{
			name: "enum",
			err:  &EnumError{Union: "Mode", Value: "dev", Keys: []string{"MODE"}},
			want: "no variant of Mode matches \"dev\" (read from `MODE`)",
			is:   []error{ErrNoVariant},
		},
		{
			name: "convert",
			err:  &ConvertError{Field: "cfg.Port", Type: reflect.TypeFor[uint16](), Err: cause},
			want: "failed to convert field `cfg.Port` to expected type `uint16`",
			is:   []error{ErrConvert, cause},
		},
		{
			name: "schema",
			err:  &SchemaError{Type: reflect.TypeFor[service](), Field: "Name", Err: ErrNoValueSource},
			want: "envload: invalid schema for envload.service.Name: field needs keys, a default, a nested node or ignore",
			is:   []error{ErrNoValueSource},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Error())
			for _, target := range tt.is {
				require.ErrorIs(t, tt.err, target)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.NoError(t, wrap("x", nil))

	leaf := &ParseError{Reason: ErrMissingKey}
	err := wrap("cfg.Limits", leaf)

	var root *Error
	require.ErrorAs(t, err, &root)
	assert.Equal(t, "cfg.Limits", root.Path)
	assert.Equal(t, KindParse, root.Kind)
	assert.Equal(t, "envload parse error in cfg.Limits: key-value pair has no key", err.Error())

	assert.Same(t, err, wrap("cfg", err), "an existing root error keeps its path")
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindRetrieve, kindOf(&RetrieveError{Reason: ErrNotFound}))
	assert.Equal(t, KindValidation, kindOf(&ValidationError{}))
	assert.Equal(t, KindEnum, kindOf(&EnumError{}))
	assert.Equal(t, KindConvert, kindOf(&ConvertError{}))
	assert.Equal(t, Kind(0), kindOf(errors.New("other")))
	assert.Equal(t, "unknown", Kind(0).String())
}
