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
	"fmt"
	"log/slog"
	"os"
	"reflect"

	"rivaas.dev/envload/codec"
	"rivaas.dev/envload/source"
)

// Option is a functional option that can be used to configure a Loader.
type Option func(l *Loader) error

// Loader resolves schema nodes against an ordered chain of sources.
//
// The chain is, highest priority first: the sources added with WithSource,
// WithEnv and WithConsul in the order given; a dotenv file declared by the
// outermost record that names one; and the fallback documents added with
// WithFallbackFile and WithFallbackContent, merged so that earlier documents
// win. An empty value such as "KEY=" does not win: a later document that sets
// KEY fills it. Without any source option the chain holds the process
// environment.
//
// Fallback documents are read once per resolve call and never cached across
// calls. A Loader is safe for concurrent use by multiple goroutines.
type Loader struct {
	sources    []Source
	fallbacks  []*source.File
	converters map[reflect.Type]Converter
	logger     *slog.Logger
	strict     bool
	dumpers    []Dumper
}

// WithSource adds a source to the chain. Sources added first take priority.
func WithSource(src Source) Option {
	return func(l *Loader) error {
		if src == nil {
			return NewOptionError("source", "add", errors.New("source is nil"))
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithEnv adds the process environment to the chain.
func WithEnv() Option {
	return WithSource(source.NewEnv())
}

// WithFallbackFile adds a fallback document read from path. The format is
// detected from the file name: ".env" and "*.env" files are dotenv, and
// .yaml, .yml, .json and .toml files are flattened with "_" between nested
// keys. For other names, use WithFallbackFileAs.
//
// Fallback documents added earlier take priority, except that an empty value
// in an earlier document is filled by a later document's non-empty one.
//
// Paths support environment variable expansion using ${VAR} or $VAR syntax.
//
// Example:
//
//	envload.WithFallbackFile("${CONFIG_DIR}/defaults.env")
func WithFallbackFile(path string) Option {
	return func(l *Loader) error {
		path = os.ExpandEnv(path)

		format, err := detectFormat(path)
		if err != nil {
			return NewOptionError("fallback-file", "detect-format", err)
		}

		decoder, err := codec.GetDecoder(format)
		if err != nil {
			return NewOptionError("fallback-file", "get-decoder", err)
		}

		l.fallbacks = append(l.fallbacks, source.NewFile(path, decoder))
		return nil
	}
}

// WithFallbackFileAs adds a fallback document read from path with an
// explicit format.
//
// Example:
//
//	envload.WithFallbackFileAs("/etc/myapp/defaults", codec.TypeDotenv)
func WithFallbackFileAs(path string, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewOptionError("fallback-file", "get-decoder", err)
		}

		l.fallbacks = append(l.fallbacks, source.NewFile(os.ExpandEnv(path), decoder))
		return nil
	}
}

// WithFallbackContent adds a fallback document from a byte slice. It merges
// with other fallback documents like [WithFallbackFile].
//
// Example:
//
//	envload.WithFallbackContent([]byte("APP_PORT=8080"), codec.TypeDotenv)
func WithFallbackContent(data []byte, codecType codec.Type) Option {
	return func(l *Loader) error {
		decoder, err := codec.GetDecoder(codecType)
		if err != nil {
			return NewOptionError("fallback-content", "get-decoder", err)
		}

		l.fallbacks = append(l.fallbacks, source.NewFileContent(data, decoder))
		return nil
	}
}

// WithConsul adds Consul's key-value store to the chain. Key K is read from
// "<prefix>/K".
//
// If CONSUL_HTTP_ADDR is not set, this option is silently skipped, allowing
// the same code to run locally without Consul.
//
// Required environment variables (production only):
//   - CONSUL_HTTP_ADDR: The address of the Consul server
//   - CONSUL_HTTP_TOKEN: The access token for authentication (optional)
func WithConsul(prefix string) Option {
	return func(l *Loader) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}

		c, err := source.NewConsul(os.ExpandEnv(prefix), nil)
		if err != nil {
			return NewOptionError("consul-source", "create-client", err)
		}

		l.sources = append(l.sources, c)
		return nil
	}
}

// WithConverter registers fn as the parser for values of type T. It takes
// precedence over every built-in conversion, including for collection
// elements.
//
// Example:
//
//	envload.WithConverter(func(raw string) (netip.Prefix, error) {
//	    return netip.ParsePrefix(raw)
//	})
func WithConverter[T any](fn func(raw string) (T, error)) Option {
	return func(l *Loader) error {
		if fn == nil {
			return NewOptionError("converter", "register", errors.New("converter is nil"))
		}
		l.converters[reflect.TypeFor[T]()] = func(raw string) (any, error) {
			return fn(raw)
		}
		return nil
	}
}

// WithStrictDefaults limits defaults to absent values. By default a field
// with a default also falls back to it when the value found fails to parse
// or validate; with strict defaults that failure is returned instead.
func WithStrictDefaults() Option {
	return func(l *Loader) error {
		l.strict = true
		return nil
	}
}

// WithLogger sets the logger that receives debug events about lookups,
// defaults and variant selection. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			return NewOptionError("logger", "set", errors.New("logger is nil"))
		}
		l.logger = logger
		return nil
	}
}

// New creates a new Loader with the provided options.
// If any of the options return an error, the errors are collected and returned.
// Returns a partially initialized Loader along with any errors encountered.
func New(options ...Option) (*Loader, error) {
	var errs error
	l := &Loader{
		converters: make(map[reflect.Type]Converter),
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(l); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if len(l.sources) == 0 {
		l.sources = []Source{source.NewEnv()}
	}

	return l, errs //nolint:nilnil // Returning partial loader with error is intentional
}

// MustNew creates a new Loader with the provided options.
// It panics if any option returns an error.
// Use this in main() or initialization code where panic is acceptable.
func MustNew(options ...Option) *Loader {
	l, err := New(options...)
	if err != nil {
		panic(fmt.Sprintf("envload: failed to create loader: %v", err))
	}
	return l
}

// Resolve produces a complete value for node. Resolution stops at the first
// failure; a returned error is always an *Error.
func (l *Loader) Resolve(ctx context.Context, node Node) (any, error) {
	v, err := l.resolve(ctx, node)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// MustResolve is like Resolve but panics on error.
func (l *Loader) MustResolve(ctx context.Context, node Node) any {
	v, err := l.Resolve(ctx, node)
	if err != nil {
		panic(fmt.Sprintf("envload: failed to resolve %s: %v", node.Name(), err))
	}
	return v
}

func (l *Loader) resolve(ctx context.Context, node Node) (reflect.Value, error) {
	if node == nil {
		return reflect.Value{}, errors.New("envload: nil node")
	}
	st, err := l.newState(ctx)
	if err != nil {
		return reflect.Value{}, wrap(node.Name(), err)
	}
	v, err := node.resolve(st, node.Name())
	if err != nil {
		return reflect.Value{}, wrap(node.Name(), err)
	}
	return v, nil
}

func (l *Loader) newState(ctx context.Context) (*state, error) {
	st := &state{
		ctx:    ctx,
		parser: &parser{converters: l.converters},
		logger: l.logger,
		strict: l.strict,
		base:   l.sources,
	}
	if len(l.fallbacks) > 0 {
		m, err := source.Merge(ctx, "fallback", l.fallbacks...)
		if err != nil {
			return nil, &RetrieveError{Reason: ErrSourceFailed, Source: "fallback", Err: err}
		}
		st.fallback = m
	}
	st.chain = st.buildChain()
	return st, nil
}

// Load resolves node with l and returns the value as T.
//
// Example:
//
//	cfg, err := envload.Load[Config](ctx, loader, configSchema)
func Load[T any](ctx context.Context, l *Loader, node Node) (T, error) {
	var zero T
	if want := reflect.TypeFor[T](); node != nil && node.Type() != want {
		return zero, fmt.Errorf("envload: node %s produces %s, not %s", node.Name(), node.Type(), want)
	}
	v, err := l.resolve(ctx, node)
	if err != nil {
		return zero, err
	}
	return v.Interface().(T), nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](ctx context.Context, l *Loader, node Node) T {
	v, err := Load[T](ctx, l, node)
	if err != nil {
		panic(fmt.Sprintf("envload: failed to load: %v", err))
	}
	return v
}

// state is the per-call resolution context.
type state struct {
	ctx      context.Context
	parser   *parser
	logger   *slog.Logger
	strict   bool
	base     []Source
	dotenv   Source
	fallback Source
	chain    []Source
}

func (st *state) buildChain() []Source {
	chain := make([]Source, 0, len(st.base)+2)
	chain = append(chain, st.base...)
	if st.dotenv != nil {
		chain = append(chain, st.dotenv)
	}
	if st.fallback != nil {
		chain = append(chain, st.fallback)
	}
	return chain
}

// withDotenv returns the state used below a record that declares a dotenv
// file. Only the first such record on the path loads one; descendants
// inherit it.
func (st *state) withDotenv(path string) (*state, error) {
	if path == "" || st.dotenv != nil {
		return st, nil
	}
	path = os.ExpandEnv(path)
	m, err := source.Merge(st.ctx, path, source.NewFile(path, codec.DotenvCodec{}))
	if err != nil {
		return nil, &RetrieveError{Reason: ErrSourceFailed, Source: path, Err: err}
	}
	next := *st
	next.dotenv = m
	next.chain = next.buildChain()
	return &next, nil
}

func (st *state) lookup(path string, keys []string) (Hit, error) {
	hit, err := Lookup(st.ctx, st.chain, keys)
	if err == nil {
		st.logger.Debug("lookup hit", "path", path, "key", hit.Key, "source", hit.Source)
	}
	return hit, err
}
