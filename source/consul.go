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
	"path"
	"unicode/utf8"

	"github.com/hashicorp/consul/api"
)

// ConsulKV defines the interface for Consul key-value operations.
// This interface enables testing by allowing mock implementations.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Consul represents a source that reads individual keys from Consul's
// key-value store. Key K is read from "<prefix>/K".
//
// The Consul client is configured using environment variables:
//   - CONSUL_HTTP_ADDR: The address of the Consul server (e.g., "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: The access token for authentication (optional)
type Consul struct {
	kv     ConsulKV
	prefix string
}

// NewConsul creates a new Consul source reading keys under prefix.
// If kv is nil, it uses the default Consul client KV implementation.
//
// Errors:
//   - Returns error if the Consul client cannot be created
func NewConsul(prefix string, kv ConsulKV) (*Consul, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}
	return &Consul{kv: kv, prefix: prefix}, nil
}

// Name returns "consul".
func (c *Consul) Name() string {
	return "consul"
}

// Lookup reads a single key. A missing key is reported as not found, not as
// an error.
//
// Errors:
//   - Returns error if the Consul query fails
//   - ErrInvalidUnicode if the stored value is not valid UTF-8
func (c *Consul) Lookup(ctx context.Context, key string) (string, bool, error) {
	pair, _, err := c.kv.Get(path.Join(c.prefix, key), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", false, fmt.Errorf("failed to get consul key: %w", err)
	}
	if pair == nil {
		return "", false, nil
	}
	if !utf8.Valid(pair.Value) {
		return "", true, ErrInvalidUnicode
	}
	return string(pair.Value), true, nil
}
