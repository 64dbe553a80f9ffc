package jsparse

import (
	"testing"
)

func TestParseSourceImportFrom(t *testing.T) {
	tests := []struct {
		name           string
		source         string
		wantSpecifier  string
		wantNamed      []string
		wantDefault    bool
		wantNamespace  bool
	}{
		{
			name:          "default import",
			source:        `import React from 'react';`,
			wantSpecifier: "react",
			wantDefault:   true,
		},
		{
			name:          "namespace import",
			source:        `import * as path from 'node:path';`,
			wantSpecifier: "node:path",
			wantNamespace: true,
		},
		{
			name:          "named import",
			source:        `import { useState, useEffect } from 'react';`,
			wantSpecifier: "react",
			wantNamed:     []string{"useEffect", "useState"},
		},
		{
			name:          "aliased named import keeps local binding",
			source:        `import { Foo as Bar } from './foo';`,
			wantSpecifier: "./foo",
			wantNamed:     []string{"Bar"},
		},
		{
			name:          "default plus named combo",
			source:        `import React, { useState } from 'react';`,
			wantSpecifier: "react",
			wantDefault:   true,
			wantNamed:     []string{"useState"},
		},
		{
			name:          "type-only named import strips type prefix",
			source:        `import type { Foo } from './types';`,
			wantSpecifier: "./types",
			wantNamed:     []string{"Foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseSource("x.ts", tt.source)
			if len(info.Imports) != 1 {
				t.Fatalf("got %d imports, want 1: %+v", len(info.Imports), info.Imports)
			}
			rec := info.Imports[0]
			if rec.Specifier != tt.wantSpecifier {
				t.Errorf("specifier = %q, want %q", rec.Specifier, tt.wantSpecifier)
			}
			if rec.UsesDefault != tt.wantDefault {
				t.Errorf("uses_default = %v, want %v", rec.UsesDefault, tt.wantDefault)
			}
			if rec.UsesNamespace != tt.wantNamespace {
				t.Errorf("uses_namespace = %v, want %v", rec.UsesNamespace, tt.wantNamespace)
			}
			if !stringsEqual(rec.Named, tt.wantNamed) {
				t.Errorf("named = %v, want %v", rec.Named, tt.wantNamed)
			}
		})
	}
}

func TestParseSourceSideEffectImport(t *testing.T) {
	info := ParseSource("x.ts", `import './styles.css';`)
	if len(info.Imports) != 1 || !info.Imports[0].SideEffectOnly {
		t.Fatalf("expected one side-effect import, got %+v", info.Imports)
	}
	if info.Imports[0].Specifier != "./styles.css" {
		t.Errorf("specifier = %q", info.Imports[0].Specifier)
	}
}

func TestParseSourceRequireAndDestructure(t *testing.T) {
	info := ParseSource("x.js", `
const fs = require('fs');
const { readFile, writeFile: write } = require('./io');
`)
	if len(info.Imports) != 2 {
		t.Fatalf("got %d imports, want 2: %+v", len(info.Imports), info.Imports)
	}
	if !info.Imports[0].UsesNamespace || info.Imports[0].Specifier != "fs" {
		t.Errorf("first import = %+v", info.Imports[0])
	}
	if info.Imports[1].Specifier != "./io" || !stringsEqual(info.Imports[1].Named, []string{"readFile", "writeFile"}) {
		t.Errorf("second import = %+v", info.Imports[1])
	}
}

func TestParseSourceDynamicImport(t *testing.T) {
	info := ParseSource("x.ts", `const mod = await import('./lazy');`)
	if len(info.Imports) != 1 || !info.Imports[0].UsesNamespace {
		t.Fatalf("expected namespace dynamic import, got %+v", info.Imports)
	}
}

func TestParseSourceExports(t *testing.T) {
	info := ParseSource("x.ts", `
export const a = 1;
export function b() {}
export { c, d as e };
export default function () {}
`)
	if !stringsEqual(info.Exports, []string{"a", "b", "c", "e"}) {
		t.Errorf("exports = %v", info.Exports)
	}
	if !info.HasDefaultExport {
		t.Error("expected has_default_export")
	}
}

func TestParseSourceReexport(t *testing.T) {
	info := ParseSource("x.ts", `export { a, b as c } from './other';`)
	if len(info.Imports) != 1 {
		t.Fatalf("got %d imports, want 1: %+v", len(info.Imports), info.Imports)
	}
	rec := info.Imports[0]
	if !rec.IsReexport || rec.Specifier != "./other" {
		t.Errorf("reexport record = %+v", rec)
	}
	if !stringsEqual(rec.Named, []string{"a", "b"}) {
		t.Errorf("reexport named = %v, want import-side names [a b]", rec.Named)
	}
}

func TestParseSourceExportAll(t *testing.T) {
	info := ParseSource("x.ts", `export * from './shared';`)
	if !info.HasExportAll {
		t.Error("expected has_export_all")
	}
	if len(info.Imports) != 1 || !info.Imports[0].UsesNamespace || !info.Imports[0].IsReexport {
		t.Errorf("export-all import record = %+v", info.Imports)
	}
}

func TestStripCommentsPreservesStringsAndLines(t *testing.T) {
	src := "const a = 1; // trailing comment\nconst url = \"http://example.com\"; /* block\nspans lines */\nconst b = 2;"
	stripped := StripComments(src)
	if want := "http://example.com"; !contains(stripped, want) {
		t.Errorf("string literal containing // was mangled: %q", stripped)
	}
	if !contains(stripped, "const b = 2;") {
		t.Errorf("content after block comment missing: %q", stripped)
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && (func() bool {
		for i := 0; i+len(needle) <= len(haystack); i++ {
			if haystack[i:i+len(needle)] == needle {
				return true
			}
		}
		return false
	})()
}
