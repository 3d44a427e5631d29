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

package envload_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rivaas.dev/envload"
	"rivaas.dev/envload/codec"
	"rivaas.dev/envload/naming"
	"rivaas.dev/envload/source"
)

type Config struct {
	Port    uint16
	Hosts   []string
	Timeout *time.Duration
}

// Example demonstrates resolving a record from a static source.
func Example() {
	schema := envload.MustRecord[Config](
		envload.ContainerSpec{Prefix: "APP", RenameAll: naming.ScreamingSnake},
		envload.FieldSpec{Name: "Port", Keys: []string{"port"}, Default: envload.Literal(8080)},
		envload.FieldSpec{Name: "Hosts", Keys: []string{"hosts", "host"}},
		envload.FieldSpec{Name: "Timeout", Keys: []string{"timeout"}},
	)

	loader := envload.MustNew(envload.WithSource(source.NewMap("env", map[string]string{
		"APP_HOST": "a.example.com, b.example.com",
	})))

	cfg, err := envload.Load[Config](context.Background(), loader, schema)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(cfg.Port)
	fmt.Println(cfg.Hosts)
	fmt.Println(cfg.Timeout == nil)

	// Output:
	// 8080
	// [a.example.com b.example.com]
	// true
}

// ExampleFill demonstrates the struct tag front-end.
func ExampleFill() {
	type Server struct {
		Addr    string        `env:"ADDR" default:":8080"`
		Timeout time.Duration `env:"TIMEOUT" default:"5s"`
	}

	loader := envload.MustNew(
		envload.WithSource(source.NewMap("env", map[string]string{"SRV_TIMEOUT": "1m"})),
	)

	srv, err := envload.Fill[Server](context.Background(), loader, envload.ContainerSpec{Prefix: "SRV"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(srv.Addr, srv.Timeout)
	// Output: :8080 1m0s
}

type Mode interface{ isMode() }

type Production struct{ APIPort uint16 }

type Development struct{}

func (Production) isMode()  {}
func (Development) isMode() {}

// ExampleNewUnion demonstrates selecting a variant from a discriminant.
func ExampleNewUnion() {
	production := envload.MustRecord[Production](
		envload.ContainerSpec{Prefix: "PRODUCTION", RenameAll: naming.ScreamingSnake},
		envload.FieldSpec{Name: "APIPort", Keys: []string{"api_port"}},
	)
	mode := envload.MustUnion[Mode](
		envload.ContainerSpec{RenameAll: naming.Upper, DiscriminantKeys: []string{"ENVIRONMENT"}},
		envload.VariantSpec{Name: "Production", Payload: production},
		envload.VariantSpec{Name: "Development", Unit: Development{}, Default: true},
	)

	loader := envload.MustNew(envload.WithSource(source.NewMap("env", map[string]string{
		"ENVIRONMENT":         "PRODUCTION",
		"PRODUCTION_API_PORT": "8000",
	})))

	m, err := envload.Load[Mode](context.Background(), loader, mode)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%+v\n", m)
	// Output: {APIPort:8000}
}

// ExampleWithFallbackContent demonstrates a fallback document below the environment.
func ExampleWithFallbackContent() {
	schema := envload.MustRecord[Config](
		envload.ContainerSpec{},
		envload.FieldSpec{Name: "Port", Keys: []string{"PORT"}},
	)

	loader := envload.MustNew(
		envload.WithSource(source.NewMap("env", nil)),
		envload.WithFallbackContent([]byte("PORT=9000\n"), codec.TypeDotenv),
	)

	cfg := envload.MustLoad[Config](context.Background(), loader, schema)
	fmt.Println(cfg.Port)
	// Output: 9000
}

// ExampleError demonstrates inspecting a resolve error.
func ExampleError() {
	schema := envload.MustRecord[Config](
		envload.ContainerSpec{Prefix: "APP"},
		envload.FieldSpec{Name: "Port", Keys: []string{"PORT"}},
	)

	loader := envload.MustNew(envload.WithSource(source.NewMap("env", map[string]string{"APP_PORT": "http"})))

	_, err := loader.Resolve(context.Background(), schema)

	var root *envload.Error
	if errors.As(err, &root) {
		fmt.Println(root.Path, root.Kind)
	}
	fmt.Println(errors.Is(err, envload.ErrUnexpectedValueType))
	// Output:
	// Config.Port parse
	// true
}

// ExampleTemplate demonstrates listing the keys a schema reads.
func ExampleTemplate() {
	schema := envload.MustRecord[Config](
		envload.ContainerSpec{Prefix: "APP"},
		envload.FieldSpec{Name: "Port", Keys: []string{"PORT"}, Default: envload.Literal(8080)},
		envload.FieldSpec{Name: "Hosts", Keys: []string{"HOSTS"}},
	)

	for _, p := range envload.Template(schema) {
		fmt.Printf("%s=%s\n", p.Key, p.Value)
	}
	// Output:
	// APP_PORT=8080
	// APP_HOSTS=
}
