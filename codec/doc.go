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

// Package codec provides encoding and decoding of configuration data.
//
// The package defines [Encoder] and [Decoder] interfaces and a registry that
// maps a codec [Type] to its implementation. Every built-in codec registers
// itself on import:
//
//   - TypeDotenv: KEY=VALUE lines, as read from a .env file
//   - TypeJSON, TypeYAML, TypeTOML: structured documents
//   - TypeCaster: a single raw string converted to a scalar Go value
//
// Structured documents are turned into flat lookup maps with [Flatten], so a
// YAML or TOML file can serve as a fallback map keyed like environment
// variables:
//
//	dec, _ := codec.GetDecoder(codec.TypeYAML)
//	var doc map[string]any
//	_ = dec.Decode(data, &doc)
//	flat, _ := codec.Flatten(doc, "_") // {"database_HOST": "db", ...}
//
// # Type Casting
//
// [Cast] converts a raw string to a value of a given reflect.Type using
// github.com/spf13/cast, with range checks for sized integers:
//
//	v, err := codec.Cast("8080", reflect.TypeFor[uint16]())
//
// Supported targets are bool, string, all integer and float kinds,
// time.Duration and time.Time.
package codec
