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

package dumper

import (
	"context"
	"fmt"
	"os"

	"rivaas.dev/envload/codec"
)

// File represents a dumper that writes a template to a file.
type File struct {
	path        string
	encoder     codec.Encoder
	permissions os.FileMode
}

const (
	// DefaultFilePermissions represents the default file permissions for dumped templates (0644).
	DefaultFilePermissions = 0o644
)

// NewFile creates a new File dumper that writes to the specified file path.
// It uses default file permissions of 0644.
func NewFile(path string, encoder codec.Encoder) *File {
	return &File{
		path:        path,
		encoder:     encoder,
		permissions: DefaultFilePermissions,
	}
}

// NewFileWithPermissions creates a new File dumper with custom file permissions.
func NewFileWithPermissions(path string, encoder codec.Encoder, permissions os.FileMode) *File {
	return &File{
		path:        path,
		encoder:     encoder,
		permissions: permissions,
	}
}

// Dump encodes pairs and writes them to the file. Dotenv encoders receive the
// pairs as is; other encoders receive a key/value map, where the first pair
// for a key wins.
//
// Errors:
//   - Returns error if encoding fails
//   - Returns error if writing to the file fails
func (f *File) Dump(_ context.Context, pairs []codec.Pair) error {
	var v any = pairs
	switch f.encoder.(type) {
	case codec.DotenvCodec, *codec.DotenvCodec:
	default:
		m := make(map[string]string, len(pairs))
		for _, p := range pairs {
			if _, ok := m[p.Key]; !ok {
				m[p.Key] = p.Value
			}
		}
		v = m
	}

	data, err := f.encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}

	if err = os.WriteFile(f.path, data, f.permissions); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
