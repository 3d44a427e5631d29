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
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Struct tags read by the tag front-end.
const (
	TagEnv     = "env"     // comma separated keys; empty means the field name
	TagDefault = "default" // literal default, parsed like a source value
	TagDelim   = "delim"   // collection delimiter
	TagOptions = "envload" // noprefix, nosuffix, nested, ignore
)

// ContainerProvider is implemented by struct types that declare their own
// naming policy for the tag front-end.
type ContainerProvider interface {
	EnvContainer() ContainerSpec
}

// SpecFromTags derives field specs from the struct tags of T. Fields without
// any tag are skipped.
//
// Example:
//
//	type Config struct {
//	    Port    uint16        `env:"PORT" default:"8080" validate:"min=1024"`
//	    Hosts   []string      `env:"HOSTS,HOST" delim:";"`
//	    Timeout time.Duration `env:"" default:"30s"`
//	    DB      Database      `envload:"nested"`
//	    cache   *Cache
//	}
func SpecFromTags[T any]() ([]FieldSpec, error) {
	return specFromTags(reflect.TypeFor[T](), map[reflect.Type]bool{})
}

// RecordFromTags builds a record for T from its struct tags. The container
// is c, or the result of T's EnvContainer method when c is the zero value
// and T implements ContainerProvider.
func RecordFromTags[T any](c ContainerSpec) (*Record, error) {
	t := reflect.TypeFor[T]()
	return recordFromTags(t, containerFor(t, c), map[reflect.Type]bool{})
}

// Fill builds a record for T from its struct tags and resolves it with l.
//
// Example:
//
//	cfg, err := envload.Fill[Config](ctx, envload.MustNew(), envload.ContainerSpec{Prefix: "APP"})
func Fill[T any](ctx context.Context, l *Loader, c ContainerSpec) (T, error) {
	var zero T
	r, err := RecordFromTags[T](c)
	if err != nil {
		return zero, err
	}
	return Load[T](ctx, l, r)
}

func containerFor(t reflect.Type, c ContainerSpec) ContainerSpec {
	if !isZeroContainer(c) {
		return c
	}
	if p, ok := reflect.New(t).Interface().(ContainerProvider); ok {
		return p.EnvContainer()
	}
	return c
}

func isZeroContainer(c ContainerSpec) bool {
	return c.Prefix == "" && c.Suffix == "" && c.Delimiter == "" && c.RenameAll == "" &&
		c.DotenvPath == "" && len(c.DiscriminantKeys) == 0
}

func recordFromTags(t reflect.Type, c ContainerSpec, building map[reflect.Type]bool) (*Record, error) {
	specs, err := specFromTags(t, building)
	if err != nil {
		return nil, err
	}
	return newRecord(t, c, specs)
}

func specFromTags(t reflect.Type, building map[reflect.Type]bool) ([]FieldSpec, error) {
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t, Err: fmt.Errorf("%w: records must be structs", ErrUnsupportedTarget)}
	}
	if building[t] {
		return nil, &SchemaError{Type: t, Err: fmt.Errorf("%w: recursive nesting", ErrUnsupportedTarget)}
	}
	building[t] = true
	defer delete(building, t)

	var specs []FieldSpec
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		env, hasEnv := sf.Tag.Lookup(TagEnv)
		def, hasDefault := sf.Tag.Lookup(TagDefault)
		delim := sf.Tag.Get(TagDelim)
		opts, hasOpts := sf.Tag.Lookup(TagOptions)
		rules, hasRules := sf.Tag.Lookup(TagValidate)
		if !hasEnv && !hasDefault && !hasOpts && !hasRules && delim == "" {
			continue
		}

		spec := FieldSpec{Name: sf.Name, Delimiter: delim}
		for _, opt := range strings.Split(opts, ",") {
			switch strings.TrimSpace(opt) {
			case "":
			case "noprefix":
				spec.NoPrefix = true
			case "nosuffix":
				spec.NoSuffix = true
			case "ignore":
				spec.Ignore = true
			case "nested":
				node, err := nestedNode(sf.Type, building)
				if err != nil {
					return nil, err
				}
				spec.Nested = node
			default:
				return nil, &SchemaError{Type: t, Field: sf.Name, Err: fmt.Errorf("%w: unknown option %q", ErrConflictingFlags, opt)}
			}
		}

		if hasEnv {
			spec.Keys = splitKeys(env, sf.Name)
		}
		if hasDefault {
			spec.Default = Literal(def)
		}
		if hasRules {
			vt := sf.Type
			if vt.Kind() == reflect.Pointer {
				vt = vt.Elem()
			}
			hook, err := rulesHook(vt, rules)
			if err != nil {
				return nil, &SchemaError{Type: t, Field: sf.Name, Err: err}
			}
			spec.ValidateAfter = hook
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// nestedNode finds the node for a nested field: a registered node for the
// type, or a record built from the type's own tags.
func nestedNode(t reflect.Type, building map[reflect.Type]bool) (Node, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if node, ok := DefaultRegistry.Lookup(t); ok {
		return node, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t, Err: fmt.Errorf("%w: register a node for nested %s", ErrUnsupportedTarget, t)}
	}
	return recordFromTags(t, containerFor(t, ContainerSpec{}), building)
}

func splitKeys(tag, fieldName string) []string {
	var keys []string
	for _, k := range strings.Split(tag, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		keys = []string{fieldName}
	}
	return keys
}
