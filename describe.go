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
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"rivaas.dev/envload/codec"
	"rivaas.dev/envload/dumper"
)

// Entry describes one value read by a schema.
type Entry struct {
	// Path is the dotted location of the value, e.g. "Config.Database.Port".
	// Union variants appear as "Config.Mode.Production.Port".
	Path string
	// Keys are the composed lookup keys, in the order they are tried.
	Keys []string
	// Type is the Go type of the value, or the accepted values of a
	// discriminant.
	Type string
	// Default is the rendered default, empty when there is none or it is
	// computed at resolve time.
	Default    string
	HasDefault bool
	// Required reports that resolution fails when every key is absent.
	Required bool
}

// Describe lists every value node reads, depth first in declaration order.
func Describe(node Node) []Entry {
	var out []Entry
	node.describe(node.Name(), &out)
	return out
}

func (r *Record) describe(path string, out *[]Entry) {
	for _, f := range r.fields {
		fpath := path + "." + f.name
		switch {
		case f.spec.Ignore:
		case f.spec.Nested != nil:
			f.spec.Nested.describe(fpath, out)
		default:
			e := Entry{
				Path:       fpath,
				Keys:       slices.Clone(f.keys),
				Type:       f.typ.String(),
				HasDefault: f.spec.Default != nil,
				Required:   f.spec.Default == nil && !f.optional,
			}
			if f.spec.Default != nil {
				e.Default = f.spec.Default.String()
			}
			*out = append(*out, e)
		}
	}
}

func (u *Union) describe(path string, out *[]Entry) {
	values := make([]string, 0, len(u.variants))
	for _, v := range u.variants {
		values = append(values, v.values...)
	}
	e := Entry{
		Path:     path,
		Keys:     slices.Clone(u.keys),
		Type:     "one of " + strings.Join(values, ", "),
		Required: u.def == nil,
	}
	if u.def != nil {
		e.Default = u.def.values[0]
		e.HasDefault = true
	}
	*out = append(*out, e)

	for _, v := range u.variants {
		if v.payload != nil {
			v.payload.describe(path+"."+v.name, out)
		}
	}
}

// Template renders the entries of node as key/value pairs, one per entry,
// using the first key of each entry and its default as the value. The
// comment names the path, type and alternative keys. A key shared by several
// entries is written once.
func Template(node Node) []codec.Pair {
	entries := Describe(node)
	pairs := make([]codec.Pair, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if len(e.Keys) == 0 || seen[e.Keys[0]] {
			continue
		}
		seen[e.Keys[0]] = true

		comment := fmt.Sprintf("%s (%s)", e.Path, e.Type)
		if e.Required {
			comment += ", required"
		}
		if len(e.Keys) > 1 {
			comment += "\nalso read from " + strings.Join(e.Keys[1:], ", ")
		}
		pairs = append(pairs, codec.Pair{Key: e.Keys[0], Value: e.Default, Comment: comment})
	}
	return pairs
}

// Dumper writes a template to a destination.
type Dumper interface {
	Dump(ctx context.Context, pairs []codec.Pair) error
}

// WithDumper adds a dumper used by DumpTemplate.
func WithDumper(d Dumper) Option {
	return func(l *Loader) error {
		if d == nil {
			return NewOptionError("dumper", "add", errors.New("dumper is nil"))
		}
		l.dumpers = append(l.dumpers, d)
		return nil
	}
}

// WithTemplateFile adds a file dumper used by DumpTemplate. The format is
// detected from the file name the same way as for WithFallbackFile, so
// ".env.example" writes a commented dotenv file.
//
// Paths support environment variable expansion using ${VAR} or $VAR syntax.
func WithTemplateFile(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewOptionError("template-file", "detect-format", err)
		}

		encoder, err := codec.GetEncoder(format)
		if err != nil {
			return NewOptionError("template-file", "get-encoder", err)
		}

		l.dumpers = append(l.dumpers, dumper.NewFile(path, encoder))
		return nil
	}
}

// DumpTemplate writes the template of node to every configured dumper.
//
// Errors:
//   - Returns the joined errors of every failing dumper
func (l *Loader) DumpTemplate(ctx context.Context, node Node) error {
	pairs := Template(node)
	var errs error
	for i, d := range l.dumpers {
		if err := d.Dump(ctx, pairs); err != nil {
			errs = errors.Join(errs, NewOptionError(fmt.Sprintf("dumper[%d]", i), "dump", err))
		}
	}
	return errs
}

// formatValue renders v the way it would be written in a source: collection
// elements joined with delim, map entries as key=value.
func formatValue(v reflect.Value, delim string) string {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return ""
		}
		return formatValue(v.Elem(), delim)
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i), delim)
		}
		return strings.Join(parts, delim)
	case reflect.Map:
		parts := make([]string, 0, v.Len())
		set := v.Type().Elem() == emptyStructType
		iter := v.MapRange()
		for iter.Next() {
			k := formatValue(iter.Key(), delim)
			if set {
				parts = append(parts, k)
				continue
			}
			parts = append(parts, k+"="+formatValue(iter.Value(), delim))
		}
		slices.Sort(parts)
		return strings.Join(parts, delim)
	}
	if s, err := cast.ToStringE(v.Interface()); err == nil {
		return s
	}
	return fmt.Sprint(v.Interface())
}
