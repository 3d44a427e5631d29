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

// Package envload resolves typed configuration values from environment
// variables and fallback documents.
//
// A schema describes, per struct field, which keys to read, how to parse the
// value, how to validate and transform it, and what to use when it is
// absent. Schemas are built once, checked when they are built, and resolved
// any number of times, concurrently if needed.
//
// # Key Features
//
//   - Naming policy per container: prefix, suffix, delimiter and case style
//   - Ordered source chain: environment, Consul, dotenv and structured files
//   - Scalars, sequences, sets and maps parsed from delimited strings
//   - Validate-before, transform and validate-after hooks per field
//   - Zero, literal, value and supplier defaults
//   - Nested records and tagged unions selected by a discriminant value
//   - Struct tag front-end and env templates generated from a schema
//
// # Quick Start
//
// Describe a struct:
//
//	type Config struct {
//	    Port    uint16
//	    Hosts   []string
//	    Timeout *time.Duration
//	}
//
//	var schema = envload.MustRecord[Config](
//	    envload.ContainerSpec{Prefix: "APP", RenameAll: naming.ScreamingSnake},
//	    envload.FieldSpec{Name: "Port", Keys: []string{"port"}, Default: envload.Literal(8080)},
//	    envload.FieldSpec{Name: "Hosts", Keys: []string{"hosts", "host"}},
//	    envload.FieldSpec{Name: "Timeout", Keys: []string{"timeout"}},
//	)
//
// Resolve it:
//
//	cfg, err := envload.Load[Config](ctx, envload.MustNew(), schema)
//
// Port is read from APP_PORT and defaults to 8080, Hosts from APP_HOSTS or
// APP_HOST, and Timeout stays nil when APP_TIMEOUT is unset.
//
// # Naming
//
// A key is composed as prefix + delimiter + name + delimiter + suffix, where
// each part is left out when it is empty or suppressed for the field. When a
// case style is set it is applied to the whole composed key; the delimiter
// then only marks a word boundary:
//
//	Prefix "APP", Delimiter "_", RenameAll naming.Upper, key "timeout_v1" -> APP_TIMEOUT_V1
//	Prefix "app", Delimiter "-", RenameAll naming.ScreamingSnake, key "port" -> APP_PORT
//
// # Sources
//
// Sources are consulted in priority order and, within a source, keys in the
// order given. A higher priority source always wins:
//
//	loader := envload.MustNew(
//	    envload.WithEnv(),
//	    envload.WithConsul("${APP_ENV}/service"),
//	    envload.WithFallbackFile("defaults.env"),
//	)
//
// A record may declare its own dotenv file with ContainerSpec.DotenvPath;
// the first record on the path that does so loads it for everything below.
//
// # Parsing
//
// Values are trimmed and parsed according to the field type: registered
// converters, time.Duration, time.Time, url.URL, encoding.TextUnmarshaler
// and the built-in scalar kinds. []T is a delimited sequence,
// map[K]struct{} a set and map[K]V a list of key=value pairs. A pointer field
// is optional: it resolves to nil when every key is absent.
//
// # Defaults
//
// A default is used when every key is absent. Unless WithStrictDefaults is
// given, it is also used when the value found fails to parse or validate.
//
// # Errors
//
// Resolve calls return an *Error holding the dotted path of the failing
// field and one of *RetrieveError, *ParseError, *ValidationError, *EnumError
// or *ConvertError. Each wraps a sentinel usable with errors.Is:
//
//	if errors.Is(err, envload.ErrNotFound) {
//	    // a required value is missing
//	}
//
// Schema construction returns *SchemaError, never a resolve error.
//
// # Templates
//
// Describe lists every key a schema reads and Template renders that list as
// key/value pairs, which dumpers write out:
//
//	loader := envload.MustNew(envload.WithTemplateFile(".env.example"))
//	err := loader.DumpTemplate(ctx, schema)
package envload
