package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/deadwood/domain"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzeUseCaseEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "package.json", `{"name":"fixture","dependencies":{"lodash":"^4.0.0","unused-pkg":"^1.0.0"}}`)
	writeFixture(t, root, "src/index.ts", `
import { helper } from './helper';
import _ from 'lodash';

helper();
console.log(_.noop);
`)
	writeFixture(t, root, "src/helper.ts", `
export function helper() {}
export function orphan() {}
`)
	writeFixture(t, root, "src/orphan-file.ts", `export const never = 1;`)

	req := domain.DefaultAnalyzeRequest()
	req.Root = root
	req.IncludeLowConfidence = true

	uc := NewAnalyzeUseCase(nil)
	resp, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	report := resp.Report
	if report.TotalSourceFiles != 3 {
		t.Errorf("TotalSourceFiles = %d, want 3", report.TotalSourceFiles)
	}

	foundUnusedDep := false
	for _, d := range report.UnusedDependencies {
		if d == "unused-pkg" {
			foundUnusedDep = true
		}
		if d == "lodash" {
			t.Errorf("lodash is imported, should not be in unused_dependencies")
		}
	}
	if !foundUnusedDep {
		t.Errorf("expected unused-pkg in unused_dependencies, got %v", report.UnusedDependencies)
	}

	foundUnusedFile := false
	for _, f := range report.UnusedFiles {
		if f == "src/orphan-file.ts" {
			foundUnusedFile = true
		}
	}
	if !foundUnusedFile {
		t.Errorf("expected src/orphan-file.ts in unused_files, got %v", report.UnusedFiles)
	}
}
