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

// Package dumper writes configuration templates.
//
// A template is the list of keys a schema reads, with their defaults, as
// produced by envload.Template. The File dumper encodes it with any codec
// encoder: dotenv output keeps the order and comments of the template, while
// JSON, YAML and TOML output is a flat key/value document.
//
// # Example
//
//	encoder, _ := codec.GetEncoder(codec.TypeDotenv)
//	fileDumper := dumper.NewFile(".env.example", encoder)
//	err := fileDumper.Dump(context.Background(), envload.Template(schema))
//
// Creating a file dumper with custom permissions:
//
//	fileDumper := dumper.NewFileWithPermissions(".env.example", encoder, 0600)
package dumper
