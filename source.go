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
	"strings"

	"rivaas.dev/envload/source"
)

// Source is a read-only key/value provider consulted during resolution.
// Implementations live in the source package.
type Source interface {
	// Name identifies the source in error messages and logs.
	Name() string
	// Lookup returns the raw value of key and whether it exists.
	Lookup(ctx context.Context, key string) (value string, found bool, err error)
}

// Hit is the result of a successful chain lookup.
type Hit struct {
	Value  string // trimmed raw value
	Key    string // the key that matched
	Source string // name of the source that held it
	Rank   int    // index of the source in the chain, 0 is highest priority
}

// Lookup scans sources in priority order and, within each source, keys in
// the given order. The first hit wins: a value from a higher priority source
// is returned even if a lower priority source holds an earlier key.
// Values are trimmed of surrounding whitespace.
//
// Errors:
//   - *RetrieveError wrapping ErrNotFound if no source holds any key
//   - *RetrieveError wrapping ErrInvalidUnicode if a hit is not valid UTF-8
//   - *RetrieveError wrapping ErrSourceFailed if a source fails
func Lookup(ctx context.Context, sources []Source, keys []string) (Hit, error) {
	for rank, src := range sources {
		for _, key := range keys {
			value, found, err := src.Lookup(ctx, key)
			if err != nil {
				reason := ErrSourceFailed
				if errors.Is(err, source.ErrInvalidUnicode) {
					reason = ErrInvalidUnicode
				}
				return Hit{}, &RetrieveError{Reason: reason, Keys: keys, Key: key, Source: src.Name(), Err: err}
			}
			if found {
				return Hit{
					Value:  strings.TrimSpace(value),
					Key:    key,
					Source: src.Name(),
					Rank:   rank,
				}, nil
			}
		}
	}
	return Hit{}, &RetrieveError{Reason: ErrNotFound, Keys: keys}
}
