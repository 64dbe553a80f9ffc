package service

import (
	"testing"

	"github.com/ludo-technologies/deadwood/domain"
)

func TestUnusedExportLabels(t *testing.T) {
	exports := []domain.UnusedExport{
		{File: "b.ts", Export: "z"},
		{File: "a.ts", Export: "y"},
	}

	labels := unusedExportLabels(exports)
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}
	if labels[0] != "a.ts: y" || labels[1] != "b.ts: z" {
		t.Errorf("expected sorted labels, got %v", labels)
	}
}

func TestUnusedExportLabels_Empty(t *testing.T) {
	if labels := unusedExportLabels(nil); len(labels) != 0 {
		t.Errorf("expected no labels for nil input, got %v", labels)
	}
}

func TestDashboard_SelectFindings_NoCandidates(t *testing.T) {
	d := NewDashboard()
	selected, err := d.SelectFindings(nil)
	if err != nil {
		t.Fatalf("SelectFindings returned error: %v", err)
	}
	if selected != nil {
		t.Errorf("expected nil selection for no candidates, got %v", selected)
	}
}
