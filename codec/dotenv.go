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
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// TypeDotenv is the codec type of dotenv-style KEY=VALUE files.
const TypeDotenv Type = "dotenv"

func init() {
	RegisterEncoder(TypeDotenv, DotenvCodec{})
	RegisterDecoder(TypeDotenv, DotenvCodec{})
}

// DotenvCodec reads and writes dotenv-style files.
//
// Decoding supports a small format: one KEY=VALUE pair per line,
// blank lines and lines starting with '#' are ignored, key and value are
// trimmed, and one pair of surrounding double quotes is stripped from the
// value. There are no multi-line values and no escape sequences. Lines
// without '=' are skipped.
type DotenvCodec struct{}

// Decode parses data into the map pointed to by v, which must be a
// *map[string]string. Later lines override earlier ones.
func (DotenvCodec) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]string)
	if !ok {
		return fmt.Errorf("DotenvCodec.Decode: expected *map[string]string, got %T", v)
	}

	values := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan dotenv data: %w", err)
	}

	*ptr = values
	return nil
}

// Encode renders v as dotenv lines. It accepts []Pair (written in order,
// comments as '#' lines above the pair), map[string]string and
// map[string]any (written in sorted key order).
func (DotenvCodec) Encode(v any) ([]byte, error) {
	var pairs []Pair
	switch t := v.(type) {
	case []Pair:
		pairs = t
	case map[string]string:
		for k, val := range t {
			pairs = append(pairs, Pair{Key: k, Value: val})
		}
		sortPairs(pairs)
	case map[string]any:
		flat, err := Flatten(t, "_")
		if err != nil {
			return nil, err
		}
		for k, val := range flat {
			pairs = append(pairs, Pair{Key: k, Value: val})
		}
		sortPairs(pairs)
	default:
		return nil, fmt.Errorf("DotenvCodec.Encode: unsupported value %T", v)
	}

	var buf bytes.Buffer
	for _, p := range pairs {
		if p.Comment != "" {
			for _, line := range strings.Split(p.Comment, "\n") {
				buf.WriteString("# ")
				buf.WriteString(line)
				buf.WriteByte('\n')
			}
		}
		buf.WriteString(p.Key)
		buf.WriteByte('=')
		buf.WriteString(quote(p.Value))
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}

func quote(value string) string {
	if value == "" || strings.ContainsAny(value, " \t#") || strings.HasPrefix(value, `"`) {
		return `"` + value + `"`
	}
	return value
}

func sortPairs(pairs []Pair) {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
}
