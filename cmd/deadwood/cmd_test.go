package main

import "testing"

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	expectedFlags := []string{"entry", "include-non-prod-deps", "include-low-confidence", "asset-roots", "format", "json", "output", "config", "tui", "verbose"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmd_ShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
		"c": "config",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestAnalyzeCmd_DefaultFormatIsText(t *testing.T) {
	cmd := analyzeCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("expected default format to be 'text', got %q", formatFlag.DefValue)
	}
}

func TestDepsCmd_FlagsExist(t *testing.T) {
	cmd := depsCmd()

	expectedFlags := []string{"format", "output", "dot", "include-external", "no-legend", "rank-dir"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCleanCmd_FlagsExist(t *testing.T) {
	cmd := cleanCmd()

	expectedFlags := []string{"yes", "include-assets", "entry"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestUndoCmd_FlagsExist(t *testing.T) {
	cmd := undoCmd()

	if cmd.Flags().Lookup("root") == nil {
		t.Error("Missing expected flag: --root")
	}
}

func TestInitCmd_FlagsExist(t *testing.T) {
	cmd := initCmd()

	expectedFlags := []string{"config", "force", "minimal", "interactive"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}
