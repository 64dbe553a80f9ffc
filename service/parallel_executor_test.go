package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/deadwood/domain"
)

func writeParseFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewParallelParser(t *testing.T) {
	p := NewParallelParser()
	if p == nil {
		t.Fatal("NewParallelParser returned nil")
	}
	if p.maxConcurrency <= 0 {
		t.Errorf("maxConcurrency should be > 0, got %d", p.maxConcurrency)
	}
}

func TestParallelParser_ParsesAllFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeParseFixture(t, dir, "a.ts", "export const a = 1;")
	b := writeParseFixture(t, dir, "b.ts", "export const b = 2;")

	p := NewParallelParser()
	files := map[string]struct{}{a: {}, b: {}}

	modules, warnings, err := p.ParseFiles(context.Background(), files, nil)
	if err != nil {
		t.Fatalf("ParseFiles returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if len(modules) != 2 {
		t.Errorf("expected 2 modules, got %d", len(modules))
	}
	if _, ok := modules[a]; !ok {
		t.Errorf("expected module for %s", a)
	}
}

func TestParallelParser_CollectsPerFileFailureAsWarning(t *testing.T) {
	dir := t.TempDir()
	ok := writeParseFixture(t, dir, "ok.ts", "export const ok = 1;")
	missing := filepath.Join(dir, "missing.ts")

	p := NewParallelParser()
	files := map[string]struct{}{ok: {}, missing: {}}

	modules, warnings, err := p.ParseFiles(context.Background(), files, nil)
	if err != nil {
		t.Fatalf("ParseFiles returned error: %v", err)
	}
	if len(modules) != 1 {
		t.Errorf("expected 1 successfully parsed module, got %d", len(modules))
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning for the missing file, got %v", warnings)
	}
}

func TestParallelParser_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	a := writeParseFixture(t, dir, "a.ts", "export const a = 1;")

	p := NewParallelParser()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := p.ParseFiles(ctx, map[string]struct{}{a: {}}, nil)
	if err == nil {
		t.Fatal("expected an error from a pre-cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParallelParser_SetMaxConcurrency(t *testing.T) {
	p := NewParallelParser()
	p.SetMaxConcurrency(16)
	if p.maxConcurrency != 16 {
		t.Errorf("maxConcurrency should be 16, got %d", p.maxConcurrency)
	}

	original := p.maxConcurrency
	p.SetMaxConcurrency(0)
	p.SetMaxConcurrency(-1)
	if p.maxConcurrency != original {
		t.Errorf("maxConcurrency should remain %d for invalid values, got %d", original, p.maxConcurrency)
	}
}

func TestParallelParser_ProgressIntegration(t *testing.T) {
	dir := t.TempDir()
	a := writeParseFixture(t, dir, "a.ts", "export const a = 1;")
	b := writeParseFixture(t, dir, "b.ts", "export const b = 2;")

	var incremented int
	progress := &mockTaskProgress{
		incrementFunc: func(n int) { incremented += n },
	}

	p := NewParallelParser()
	_, _, err := p.ParseFiles(context.Background(), map[string]struct{}{a: {}, b: {}}, progress)
	if err != nil {
		t.Fatalf("ParseFiles returned error: %v", err)
	}
	if incremented != 2 {
		t.Errorf("expected 2 progress increments, got %d", incremented)
	}
}

func TestAggregatedError_Error(t *testing.T) {
	tests := []struct {
		name     string
		errors   []TaskError
		contains string
	}{
		{name: "no errors", errors: []TaskError{}, contains: "no errors"},
		{
			name:     "single error",
			errors:   []TaskError{{TaskName: "task1", Err: errors.New("failed")}},
			contains: "[task1] failed",
		},
		{
			name: "multiple errors",
			errors: []TaskError{
				{TaskName: "task1", Err: errors.New("failed1")},
				{TaskName: "task2", Err: errors.New("failed2")},
			},
			contains: "2 files failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aggErr := &AggregatedError{Errors: tt.errors}
			errStr := aggErr.Error()
			if len(errStr) == 0 {
				t.Error("error string should not be empty")
			}
			if !strings.Contains(errStr, tt.contains) {
				t.Errorf("error string should contain %q, got %q", tt.contains, errStr)
			}
		})
	}
}

func TestAggregatedError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	aggErr := &AggregatedError{Errors: []TaskError{{TaskName: "task1", Err: originalErr}}}

	if !errors.Is(aggErr.Unwrap(), originalErr) {
		t.Error("Unwrap should return the first error's underlying error")
	}
}

func TestAggregatedError_Unwrap_Empty(t *testing.T) {
	aggErr := &AggregatedError{Errors: []TaskError{}}
	if aggErr.Unwrap() != nil {
		t.Error("Unwrap on empty errors should return nil")
	}
}

func TestTaskError_Error(t *testing.T) {
	te := TaskError{TaskName: "my-task", Err: errors.New("something went wrong")}
	if got := te.Error(); got != "[my-task] something went wrong" {
		t.Errorf("unexpected error string: %s", got)
	}
}

func TestTaskError_Unwrap(t *testing.T) {
	originalErr := errors.New("original")
	te := TaskError{TaskName: "task", Err: originalErr}
	if !errors.Is(te, originalErr) {
		t.Error("TaskError should unwrap to original error")
	}
}

type mockTaskProgress struct {
	incrementFunc func(n int)
	describeFunc  func(description string)
	completeFunc  func()
}

func (m *mockTaskProgress) Increment(n int) {
	if m.incrementFunc != nil {
		m.incrementFunc(n)
	}
}

func (m *mockTaskProgress) Describe(description string) {
	if m.describeFunc != nil {
		m.describeFunc(description)
	}
}

func (m *mockTaskProgress) Complete() {
	if m.completeFunc != nil {
		m.completeFunc()
	}
}

var _ domain.TaskProgress = (*mockTaskProgress)(nil)
