package extractor_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/abdidvp/archguard/internal/adapters/outbound/extractor"
	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extract(t *testing.T, root string, opts domain.ExtractOptions) *domain.Extraction {
	t.Helper()
	ext := extractor.New(extractor.WithLogger(testutil.NewTestLogger(t)), extractor.WithWorkers(2))
	out, err := ext.Extract(context.Background(), root, opts)
	require.NoError(t, err)
	return out
}

func pairs(edges []domain.RawEdge) [][2]string {
	out := make([][2]string, len(edges))
	for i, e := range edges {
		out[i] = [2]string{e.From, e.To}
	}
	return out
}

func declared(decls []domain.Declaration) map[string]domain.ModuleKind {
	out := make(map[string]domain.ModuleKind, len(decls))
	for _, d := range decls {
		out[d.ID] = d.Kind
	}
	return out
}

func TestExtract_Go(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.24\n",
		"main.go": `package main

import "example.com/app/internal/domain"

func main() { _ = domain.Order{} }
`,
		"internal/domain/order.go": `package domain

import (
	"fmt"
	"example.com/app/internal/adapters/db"
)

type Order struct{}

type OrderStore interface{ Save(Order) error }

type ID string

var _ = fmt.Sprint
var _ db.Conn
`,
		"internal/domain/order_test.go": `package domain

import "example.com/app/internal/adapters/http"
`,
		"vendor/x/x.go": "package x\n\nimport \"example.com/app\"\n",
	})

	out := extract(t, root, domain.ExtractOptions{})

	assert.Equal(t, 3, out.Files, "test files are visited but contribute nothing")
	assert.Equal(t, [][2]string{
		{"internal/domain", "fmt"},
		{"internal/domain", "internal/adapters/db"},
		{".", "internal/domain"},
	}, pairs(out.Edges))

	decls := declared(out.Declarations)
	assert.Equal(t, domain.KindPackage, decls["internal/domain"])
	assert.Equal(t, domain.KindStruct, decls["internal/domain.Order"])
	assert.Equal(t, domain.KindInterface, decls["internal/domain.OrderStore"])
	assert.Equal(t, domain.KindType, decls["internal/domain.ID"])

	for _, e := range out.Edges {
		if e.To == "internal/adapters/db" {
			assert.Equal(t, "internal/domain/order.go", e.Source)
			assert.Equal(t, 5, e.Line)
		}
	}
}

func TestExtract_TypeScript(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"src/api/controller.ts": `import {
  UserService,
} from '../services/userService';
import type { User } from "@/domain/user";
export * from './dto.ts';
const lazy = () => import('../services/lazy');
`,
		"src/services/userService.js": "const repo = require('../repositories/userRepo');\n",
		"src/domain/user.ts": `export interface IUser { id: string }
export default class User {}
`,
		"README.md": "import x from './nope'",
	})

	out := extract(t, root, domain.ExtractOptions{})

	assert.Equal(t, [][2]string{
		{"src/api/controller", "src/services/userService"},
		{"src/api/controller", "@/domain/user"},
		{"src/api/controller", "src/api/dto"},
		{"src/api/controller", "src/services/lazy"},
		{"src/services/userService", "src/repositories/userRepo"},
	}, pairs(out.Edges))
	assert.Equal(t, 3, out.Edges[0].Line)

	decls := declared(out.Declarations)
	assert.Equal(t, domain.KindFile, decls["src/domain/user"])
	assert.Equal(t, domain.KindInterface, decls["src/domain/user.IUser"])
	assert.Equal(t, domain.KindClass, decls["src/domain/user.User"])
}

func TestExtract_Java(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"src/main/java/com/acme/service/OrderService.java": `package com.acme.service;

import java.util.*;
import com.acme.domain.Order;
import static com.acme.domain.Order.create;

public final class OrderService {}
`,
		"src/main/java/com/acme/domain/OrderRepository.java": `package com.acme.domain;

public interface OrderRepository {}
`,
	})

	out := extract(t, root, domain.ExtractOptions{})

	assert.Equal(t, [][2]string{
		{"com.acme.service.OrderService", "java.util"},
		{"com.acme.service.OrderService", "com.acme.domain.Order"},
		{"com.acme.service.OrderService", "com.acme.domain.Order"},
	}, pairs(out.Edges))

	decls := declared(out.Declarations)
	assert.Equal(t, domain.KindClass, decls["com.acme.service.OrderService"])
	assert.Equal(t, domain.KindInterface, decls["com.acme.domain.OrderRepository"])
}

func TestExtract_CSharp(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"Api/OrdersController.cs": `using System;
using Db = Shop.Infrastructure.Db;

namespace Shop.Api
{
    public sealed class OrdersController {}
    internal interface IClock {}
}
`,
		"Domain/Order.cs": `namespace Shop.Domain;

public record Order(Guid Id);
public struct Money {}
`,
	})

	out := extract(t, root, domain.ExtractOptions{})

	assert.Equal(t, [][2]string{
		{"Shop.Api.OrdersController", "System"},
		{"Shop.Api.OrdersController", "Shop.Infrastructure.Db"},
	}, pairs(out.Edges))

	decls := declared(out.Declarations)
	assert.Equal(t, domain.KindClass, decls["Shop.Api.OrdersController"])
	assert.Equal(t, domain.KindInterface, decls["Shop.Api.IClock"])
	assert.Equal(t, domain.KindType, decls["Shop.Domain.Order"])
	assert.Equal(t, domain.KindStruct, decls["Shop.Domain.Money"])
}

func TestExtract_LanguageFilter(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"a.ts":   "import b from './b';\n",
		"c.js":   "require('./d');\n",
		"e.java": "package p;\nimport q.R;\n",
	})

	out := extract(t, root, domain.ExtractOptions{Languages: []string{domain.LanguageTypeScript}})
	assert.Equal(t, 1, out.Files)
	assert.Equal(t, [][2]string{{"a", "b"}}, pairs(out.Edges))
}

func TestExtract_HonoursExcludePathsAndGitignore(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		".gitignore":                "# build output\ngenerated/\n*.gen.ts\n",
		"src/a.ts":                  "import b from './b';\n",
		"src/generated/schema.ts":   "import x from '../x';\n",
		"src/types.gen.ts":          "import y from './y';\n",
		"legacy/old.ts":             "import z from './z';\n",
		"node_modules/lib/index.js": "require('../../src/a');\n",
	})

	out := extract(t, root, domain.ExtractOptions{ExcludePaths: []string{"legacy"}})
	assert.Equal(t, [][2]string{{"src/a", "src/b"}}, pairs(out.Edges))
}

func TestExtract_HonoursNestedGitignore(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"src/a.ts":                "import b from './b';\n",
		"src/web/.gitignore":      "build/\n/local.ts\n",
		"src/web/page.ts":         "import a from '../a';\n",
		"src/web/local.ts":        "import x from './x';\n",
		"src/web/build/bundle.ts": "import y from './y';\n",
		"src/local.ts":            "import c from './c';\n",
	})

	out := extract(t, root, domain.ExtractOptions{})
	assert.Equal(t, [][2]string{
		{"src/a", "src/b"},
		{"src/local", "src/c"},
		{"src/web/page", "src/a"},
	}, pairs(out.Edges), "rules apply relative to the directory declaring them")
}

func TestExtract_SkipsOversizedFiles(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"src/a.ts":   "import b from './b';\n",
		"src/big.ts": "import c from './c';\n" + strings.Repeat("//\n", 1<<19),
	})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	out, err := extractor.New(extractor.WithLogger(logger)).Extract(context.Background(), root, domain.ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{"src/a", "src/b"}}, pairs(out.Edges))
	assert.Contains(t, logs.String(), "skipping oversized file")
	assert.Contains(t, logs.String(), "src/big.ts")
}

func TestExtract_Deterministic(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files["src/"+name+".ts"] = "import x from './shared';\nimport y from 'lib-" + name + "';\n"
	}
	root := testutil.WriteTree(t, files)

	first := extract(t, root, domain.ExtractOptions{})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.Edges, extract(t, root, domain.ExtractOptions{}).Edges)
	}
}

func TestExtract_CancelledContext(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"a.ts": "import b from './b';\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.New().Extract(ctx, root, domain.ExtractOptions{})
	var ee *domain.ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_UnparseableFileAbortsExtraction(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"go.mod": "module example.com/app\n",
		"internal/domain/order.go": `package domain

import "example.com/app/internal/infra"

var _ = infra.DB

func broken( {
`,
		"internal/infra/db.go": "package infra\n\nvar DB = 1\n",
	})

	out, err := extractor.New(extractor.WithLogger(testutil.NewTestLogger(t))).
		Extract(context.Background(), root, domain.ExtractOptions{})
	assert.Nil(t, out, "no partial extraction")

	var ee *domain.ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Contains(t, err.Error(), "internal/domain/order.go")
}

func TestExtract_MissingRoot(t *testing.T) {
	_, err := extractor.New().Extract(context.Background(), "/does/not/exist", domain.ExtractOptions{})
	var ee *domain.ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "/does/not/exist", ee.Path)
}

func TestExtract_Fixtures(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		contains [2]string
		excludes string
	}{
		{"go", "../../../../testdata/go-hexagonal/violating", [2]string{"internal/orders/domain", "internal/orders/adapters/postgres"}, "internal/orders/application/service_test.go"},
		{"typescript", "../../../../testdata/typescript/layered", [2]string{"src/domain/user", "src/infrastructure/db"}, "src/domain/generated/schema.ts"},
		{"java", "../../../../testdata/java/layered", [2]string{"com.acme.shop.api.OrderController", "com.acme.shop.repository.OrderRepository"}, "src/test/java/com/acme/shop/OrderTest.java"},
		{"csharp", "../../../../testdata/csharp/layered", [2]string{"YourProject.Api.OrdersController", "YourProject.Infrastructure.Persistence.Db"}, "src/Api/obj/Generated.cs"},
	}
	excludes := map[string][]string{
		"java":   {"target", "build", "src/test"},
		"csharp": {"bin", "obj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := extract(t, tt.root, domain.ExtractOptions{ExcludePaths: excludes[tt.name]})
			assert.Contains(t, pairs(out.Edges), tt.contains)
			for _, e := range out.Edges {
				assert.NotEqual(t, tt.excludes, e.Source)
			}
		})
	}
}
