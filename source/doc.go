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

// Package source provides the lookup backends that envload resolves keys
// against.
//
// Each backend answers a single question: does key K exist, and if so what is
// its raw value. Backends never parse values; that happens in the resolution
// engine.
//
// Available sources:
//   - Env: process environment variables, or a snapshot of them
//   - Map: a static in-memory key/value map
//   - File: dotenv, JSON, YAML or TOML documents flattened into keys
//   - Consul: per-key reads from Consul's key-value store
//
// Every source satisfies envload.Source:
//
//	Name() string
//	Lookup(ctx context.Context, key string) (string, bool, error)
package source
