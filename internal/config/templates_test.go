package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGetFullConfigTemplate_ValidYAML(t *testing.T) {
	content := GetFullConfigTemplate(ProjectTypeReact, StrictnessStrict)

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(content), &parsed); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}

	for _, section := range []string{"analysis", "output", "dependency", "assets"} {
		if _, ok := parsed[section]; !ok {
			t.Errorf("expected section %q in template", section)
		}
	}

	if !strings.Contains(content, ".next/**") {
		t.Error("expected react preset exclude pattern in template")
	}
	if !strings.Contains(content, "include_low_confidence: true") {
		t.Error("expected strict preset to enable include_low_confidence")
	}
}

func TestGetMinimalConfigTemplate_ValidYAML(t *testing.T) {
	content := GetMinimalConfigTemplate()

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(content), &parsed); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}

	if _, ok := parsed["output"]; !ok {
		t.Error("expected output section in minimal template")
	}
}

func TestGetProjectPresets_AllTypesPresent(t *testing.T) {
	presets := GetProjectPresets()
	for _, pt := range []ProjectType{ProjectTypeGeneric, ProjectTypeReact, ProjectTypeVue, ProjectTypeNodeBackend} {
		if _, ok := presets[pt]; !ok {
			t.Errorf("missing preset for project type %q", pt)
		}
	}
}
