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
	"sync"

	"github.com/go-playground/validator/v10"
)

// TagValidate holds go-playground/validator rules applied to the final
// field value, e.g. `validate:"min=1,max=65535"`.
const TagValidate = "validate"

var (
	tagValidator     *validator.Validate
	tagValidatorOnce sync.Once
	tagValidatorMu   sync.RWMutex
)

func rulesValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return tagValidator
}

// RegisterValidation adds a custom rule usable in [ValidateTag] and the
// validate struct tag. Register rules before building schemas that use them.
func RegisterValidation(tag string, fn validator.Func) error {
	tagValidatorMu.Lock()
	defer tagValidatorMu.Unlock()
	if err := rulesValidator().RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register validation %q: %w", tag, err)
	}
	return nil
}

// ValidateTag returns a hook that checks values of type T against
// go-playground/validator rules. Unknown rules are reported when the hook
// is built.
//
// Example:
//
//	port := envload.FieldSpec{Name: "Port", ValidateAfter: envload.MustValidateTag[uint16]("min=1024")}
func ValidateTag[T any](rules string) (*ValidatorSpec, error) {
	return rulesHook(reflect.TypeFor[T](), rules)
}

// MustValidateTag is like [ValidateTag] but panics on unknown rules.
func MustValidateTag[T any](rules string) *ValidatorSpec {
	v, err := ValidateTag[T](rules)
	if err != nil {
		panic(err)
	}
	return v
}

func rulesHook(t reflect.Type, rules string) (*ValidatorSpec, error) {
	rules = strings.TrimSpace(rules)
	if rules == "" {
		return nil, fmt.Errorf("%w: empty validation rules", ErrHookType)
	}
	if err := checkRules(t, rules); err != nil {
		return nil, err
	}
	return &ValidatorSpec{
		typ: t,
		fn: func(v reflect.Value) error {
			return runRules(v.Interface(), rules)
		},
	}, nil
}

// checkRules runs the rules once against the zero value; the validator
// panics on rules it does not know.
func checkRules(t reflect.Type, rules string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: validation rules %q: %v", ErrHookType, rules, r)
		}
	}()
	_ = runRules(reflect.Zero(t).Interface(), rules)
	return nil
}

func runRules(v any, rules string) error {
	tagValidatorMu.RLock()
	defer tagValidatorMu.RUnlock()

	err := rulesValidator().Var(v, rules)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("value %v fails rule %s", fe.Value(), rule))
	}
	return errors.New(strings.Join(msgs, "; "))
}
