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
	"fmt"
	"sort"
	"sync"
)

// registry holds the registered encoders and decoders.
type registry struct {
	mu       sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}

var defaultRegistry = &registry{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

// RegisterEncoder registers an encoder under name, replacing any previous
// registration.
func RegisterEncoder(name Type, encoder Encoder) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.encoders[name] = encoder
}

// RegisterDecoder registers a decoder under name, replacing any previous
// registration.
func RegisterDecoder(name Type, decoder Decoder) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.decoders[name] = decoder
}

// GetEncoder retrieves the encoder registered under name.
func GetEncoder(name Type) (Encoder, error) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	encoder, exists := defaultRegistry.encoders[name]
	if !exists {
		return nil, fmt.Errorf("encoder not found for type: %s", name)
	}
	return encoder, nil
}

// GetDecoder retrieves the decoder registered under name.
func GetDecoder(name Type) (Decoder, error) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	decoder, exists := defaultRegistry.decoders[name]
	if !exists {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}
	return decoder, nil
}

// DecoderTypes lists the registered decoder types in sorted order.
func DecoderTypes() []Type {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	types := make([]Type, 0, len(defaultRegistry.decoders))
	for t := range defaultRegistry.decoders {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
