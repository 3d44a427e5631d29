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

// Package naming composes lookup keys from candidate names.
//
// A [Policy] combines an optional prefix, an optional suffix, a delimiter and
// an optional [Case]. The prefix and suffix are joined to the candidate name
// with the delimiter, and the case conversion, when set, is applied to the
// whole composed string:
//
//	p := naming.Policy{Prefix: "APP", Suffix: "V1", Case: naming.ScreamingSnake}
//	p.Key("timeout", false, false) // "APP_TIMEOUT_V1"
//
// A case conversion re-splits the composed string into words and joins them
// with its own separator, so the delimiter only acts as a word-boundary hint
// once a case is set. Without a delimiter between them, prefix and name are
// read as a single word.
package naming
