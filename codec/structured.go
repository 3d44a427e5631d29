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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
)

// Structured document formats.
const (
	TypeJSON Type = "json"
	TypeYAML Type = "yaml"
	TypeTOML Type = "toml"
)

func init() {
	RegisterEncoder(TypeJSON, JSONCodec{})
	RegisterDecoder(TypeJSON, JSONCodec{})
	RegisterEncoder(TypeYAML, YAMLCodec{})
	RegisterDecoder(TypeYAML, YAMLCodec{})
	RegisterEncoder(TypeTOML, TOMLCodec{})
	RegisterDecoder(TypeTOML, TOMLCodec{})
}

// JSONCodec wraps encoding/json.
type JSONCodec struct{}

// Encode marshals v as indented JSON.
func (JSONCodec) Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Decode unmarshals JSON data into v.
func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// YAMLCodec wraps github.com/goccy/go-yaml.
type YAMLCodec struct{}

// Encode marshals v as YAML.
func (YAMLCodec) Encode(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Decode unmarshals YAML data into v.
func (YAMLCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// TOMLCodec wraps github.com/BurntSushi/toml.
type TOMLCodec struct{}

// Encode marshals v as TOML.
func (TOMLCodec) Encode(v any) ([]byte, error) {
	return toml.Marshal(v)
}

// Decode unmarshals TOML data into v.
func (TOMLCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// Flatten turns a decoded document into a flat lookup map. Nested tables
// are joined to their parent key with delim, and lists become
// comma-separated strings, so
//
//	database:
//	  HOST: db
//	TAGS: [a, b]
//
// flattens to {"database_HOST": "db", "TAGS": "a,b"} with delim "_".
// Keys keep their original spelling.
func Flatten(doc map[string]any, delim string) (map[string]string, error) {
	out := make(map[string]string)
	if err := flattenInto(out, "", doc, delim); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out map[string]string, parent string, doc map[string]any, delim string) error {
	for k, v := range doc {
		key := k
		if parent != "" {
			key = parent + delim + k
		}
		if err := flattenValue(out, key, v, delim); err != nil {
			return err
		}
	}
	return nil
}

func flattenValue(out map[string]string, key string, v any, delim string) error {
	switch t := v.(type) {
	case nil:
		out[key] = ""
	case map[string]any:
		return flattenInto(out, key, t, delim)
	case map[any]any:
		converted := make(map[string]any, len(t))
		for mk, mv := range t {
			converted[fmt.Sprint(mk)] = mv
		}
		return flattenInto(out, key, converted, delim)
	case []any:
		parts := make([]string, 0, len(t))
		for i, item := range t {
			s, err := cast.ToStringE(item)
			if err != nil {
				return fmt.Errorf("key %s[%d]: %w", key, i, err)
			}
			parts = append(parts, s)
		}
		out[key] = strings.Join(parts, ",")
	case []map[string]any:
		return fmt.Errorf("key %s: arrays of tables cannot be flattened", key)
	default:
		s, err := cast.ToStringE(t)
		if err != nil {
			return fmt.Errorf("key %s: %w", key, err)
		}
		out[key] = s
	}
	return nil
}
