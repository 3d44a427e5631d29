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

package source

import (
	"context"
	"fmt"
	"os"

	"dario.cat/mergo"

	"rivaas.dev/envload/codec"
)

// File represents a document that is flattened into a key/value source.
// Dotenv documents map directly onto keys; structured documents (JSON, YAML,
// TOML) have their nested tables joined with the key delimiter, so
// {"database": {"port": 5432}} becomes DATABASE_PORT=5432 with the default "_".
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
	delim   string
}

// NewFile creates a new File source that loads the document at path.
// The decoder parameter determines how the file content is parsed.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{
		path:    path,
		decoder: decoder,
		delim:   "_",
	}
}

// NewFileContent creates a new File source from the provided byte slice.
// This is useful for embedded content or dynamically generated data.
func NewFileContent(data []byte, decoder codec.Decoder) *File {
	return &File{
		data:    data,
		decoder: decoder,
		delim:   "_",
	}
}

// WithDelimiter sets the delimiter used to join nested keys of structured
// documents and returns f.
func (f *File) WithDelimiter(delim string) *File {
	f.delim = delim
	return f
}

// Name returns the file path, or "content" for in-memory documents.
func (f *File) Name() string {
	if f.path != "" {
		return f.path
	}
	return "content"
}

// Load reads the document and returns its flattened key/value pairs.
// The file is read on every call; nothing is cached.
//
// Errors:
//   - Returns error if the file cannot be read (NewFile only)
//   - Returns error if decoding or flattening fails
func (f *File) Load(context.Context) (map[string]string, error) {
	data := f.data
	if f.path != "" {
		var err error
		data, err = os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	switch f.decoder.(type) {
	case codec.DotenvCodec, *codec.DotenvCodec:
		var vars map[string]string
		if err := f.decoder.Decode(data, &vars); err != nil {
			return nil, fmt.Errorf("failed to decode file: %w", err)
		}
		return vars, nil
	}

	var doc map[string]any
	if err := f.decoder.Decode(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	vars, err := codec.Flatten(doc, f.delim)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten file: %w", err)
	}
	return vars, nil
}

// Merge loads every file and merges them into a single Map source named name.
// Earlier files take priority: a key is taken from the first file that
// defines it with a non-empty value.
//
// Errors:
//   - Returns the first load error, annotated with the file name
func Merge(ctx context.Context, name string, files ...*File) (*Map, error) {
	merged := make(map[string]string)
	for _, f := range files {
		vars, err := f.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
		if err := mergo.Merge(&merged, vars); err != nil {
			return nil, fmt.Errorf("failed to merge %s: %w", f.Name(), err)
		}
	}
	return &Map{name: name, values: merged}, nil
}
