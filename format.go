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
	"fmt"
	"path/filepath"
	"strings"

	"rivaas.dev/envload/codec"
)

// extensionFormats maps file extensions to codec types for automatic format detection.
var extensionFormats = map[string]codec.Type{
	".env":  codec.TypeDotenv,
	".yaml": codec.TypeYAML,
	".yml":  codec.TypeYAML,
	".json": codec.TypeJSON,
	".toml": codec.TypeTOML,
}

// detectFormat detects the codec type from the file extension. Files named
// ".env" or "<name>.env" are dotenv files.
func detectFormat(path string) (codec.Type, error) {
	base := strings.ToLower(filepath.Base(path))
	if base == ".env" || strings.HasPrefix(base, ".env.") {
		return codec.TypeDotenv, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensionFormats[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("cannot detect format from extension %q; use WithFallbackFileAs() to specify format explicitly", ext)
}
