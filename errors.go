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
	"strings"
)

// Kind identifies which part of the error taxonomy produced an [Error].
type Kind int

// Error kinds.
const (
	KindRetrieve Kind = iota + 1
	KindParse
	KindValidation
	KindEnum
	KindConvert
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRetrieve:
		return "retrieve"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindEnum:
		return "enum"
	case KindConvert:
		return "convert"
	}
	return "unknown"
}

// Sentinel errors. Every error returned by a resolve call matches exactly one
// of these with [errors.Is].
var (
	ErrNotFound            = errors.New("none of the keys was found")
	ErrInvalidUnicode      = errors.New("value contains invalid unicode")
	ErrSourceFailed        = errors.New("source lookup failed")
	ErrMissingKey          = errors.New("key-value pair has no key")
	ErrMissingValue        = errors.New("key-value pair has no value")
	ErrUnexpectedEqualSign = errors.New("found equal sign with no key or value around it")
	ErrUnexpectedKeyType   = errors.New("key is of unexpected type")
	ErrUnexpectedValueType = errors.New("value is of unexpected type")
	ErrParseFailed         = errors.New("parsing failed")
	ErrValidation          = errors.New("validation failed")
	ErrNoVariant           = errors.New("no variant matched")
	ErrConvert             = errors.New("default cannot be converted")
)

// RetrieveError reports that no usable value could be read from the source
// chain. Reason is [ErrNotFound], [ErrInvalidUnicode] or [ErrSourceFailed].
type RetrieveError struct {
	Reason error
	Keys   []string // every key that was tried, in order
	Key    string   // the offending key for ErrInvalidUnicode and ErrSourceFailed
	Source string
	Err    error
}

func (e *RetrieveError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrNotFound):
		return fmt.Sprintf("none of the keys (%s) was found", quoteKeys(e.Keys))
	case errors.Is(e.Reason, ErrInvalidUnicode):
		return fmt.Sprintf("key `%s` in %s contains invalid unicode", e.Key, e.Source)
	}
	return fmt.Sprintf("source %s failed for key `%s`: %v", e.Source, e.Key, e.Err)
}

// Unwrap exposes both the reason sentinel and the source error.
func (e *RetrieveError) Unwrap() []error {
	return nonNil(e.Reason, e.Err)
}

// ParseError reports that a raw value could not be turned into the target
// type. Token is the offending key or value where one applies.
type ParseError struct {
	Reason error
	Token  string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrUnexpectedKeyType):
		return fmt.Sprintf("key `%s` is of unexpected type", e.Token)
	case errors.Is(e.Reason, ErrUnexpectedValueType):
		return fmt.Sprintf("value `%s` is of unexpected type", e.Token)
	case errors.Is(e.Reason, ErrParseFailed):
		return fmt.Sprintf("parsing failed: %v", e.Err)
	}
	return e.Reason.Error()
}

// Unwrap exposes both the reason sentinel and the conversion error.
func (e *ParseError) Unwrap() []error {
	return nonNil(e.Reason, e.Err)
}

// ValidationError wraps an error returned by a user validation hook.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for `%s`: %v", e.Field, e.Err)
}

// Unwrap exposes ErrValidation and the hook error.
func (e *ValidationError) Unwrap() []error {
	return nonNil(ErrValidation, e.Err)
}

// EnumError reports that a tagged union could not select a variant.
type EnumError struct {
	Union string
	Value string
	Keys  []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("no variant of %s matches %q (read from %s)", e.Union, e.Value, quoteKeys(e.Keys))
}

// Unwrap returns ErrNoVariant.
func (e *EnumError) Unwrap() error {
	return ErrNoVariant
}

// ConvertError reports that a literal default could not be converted to the
// field type.
type ConvertError struct {
	Field string
	Type  reflect.Type
	Err   error
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("failed to convert field `%s` to expected type `%s`", e.Field, e.Type)
}

// Unwrap exposes ErrConvert and the conversion error.
func (e *ConvertError) Unwrap() []error {
	return nonNil(ErrConvert, e.Err)
}

// Error is the root error returned by a resolve call. Path is the dotted
// location of the failing field, e.g. "Config.Database.Port".
type Error struct {
	Path string
	Kind Kind
	Err  error
}

// Error returns a formatted error message with context information.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("envload %s error in %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("envload %s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying taxonomy error.
func (e *Error) Unwrap() error {
	return e.Err
}

// wrap attaches path to err unless err already carries a root Error.
func wrap(path string, err error) error {
	if err == nil {
		return nil
	}
	var root *Error
	if errors.As(err, &root) {
		return err
	}
	return &Error{Path: path, Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	var (
		retrieveErr   *RetrieveError
		parseErr      *ParseError
		validationErr *ValidationError
		enumErr       *EnumError
		convertErr    *ConvertError
	)
	switch {
	case errors.As(err, &retrieveErr):
		return KindRetrieve
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &enumErr):
		return KindEnum
	case errors.As(err, &convertErr):
		return KindConvert
	}
	return 0
}

// IsNotFound reports whether err is a retrieve error for absent keys.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// SchemaError reports an invalid schema. It is only ever returned while a
// schema is being built, never by a resolve call.
type SchemaError struct {
	Type  reflect.Type
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("envload: invalid schema for %s.%s: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("envload: invalid schema for %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Schema construction failures.
var (
	ErrNoValueSource     = errors.New("field needs keys, a default, a nested node or ignore")
	ErrInvalidDelimiter  = errors.New("collection delimiter must not be \"=\"")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrMultipleDefaults  = errors.New("more than one default variant")
	ErrHookType          = errors.New("hook type does not match")
	ErrUnknownField      = errors.New("unknown field")
	ErrConflictingFlags  = errors.New("conflicting field options")
	ErrUnsupportedTarget = errors.New("unsupported target type")
	ErrNodeType          = errors.New("node type does not match field type")
	ErrNoVariants        = errors.New("union has no variants")
)

func quoteKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "`" + k + "`"
	}
	return strings.Join(quoted, ", ")
}

func nonNil(errs ...error) []error {
	out := errs[:0:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// OptionError reports a failure while applying a loader option.
type OptionError struct {
	Source    string // the option that failed (e.g., "fallback-file", "consul-source")
	Operation string // the operation being performed (e.g., "detect-format", "create-client")
	Err       error
}

// Error returns a formatted error message with context information.
func (e *OptionError) Error() string {
	return fmt.Sprintf("envload error in %s during %s: %v", e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *OptionError) Unwrap() error {
	return e.Err
}

// NewOptionError creates a new OptionError with the provided context.
func NewOptionError(source, operation string, err error) *OptionError {
	return &OptionError{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}
