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

package naming

// DefaultDelimiter separates prefix, name and suffix when a Policy does not
// set its own delimiter.
const DefaultDelimiter = "_"

// Policy is the naming policy of a container: everything needed to turn a
// candidate name into the key that is looked up in a source.
type Policy struct {
	Prefix    string
	Suffix    string
	Delimiter string
	Case      Case
}

// Key composes the lookup key for raw.
//
// The prefix is prepended as prefix+delimiter unless noPrefix is set or the
// policy has no prefix; the suffix is appended as delimiter+suffix under the
// same rules. If a case is configured it is applied to the entire composed
// string.
func (p Policy) Key(raw string, noPrefix, noSuffix bool) string {
	delim := p.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	key := raw
	if !noPrefix && p.Prefix != "" {
		key = p.Prefix + delim + key
	}
	if !noSuffix && p.Suffix != "" {
		key = key + delim + p.Suffix
	}

	return p.Case.Apply(key)
}

// Keys composes the lookup key for every name in raw, preserving order.
func (p Policy) Keys(raw []string, noPrefix, noSuffix bool) []string {
	keys := make([]string, 0, len(raw))
	for _, r := range raw {
		keys = append(keys, p.Key(r, noPrefix, noSuffix))
	}
	return keys
}
