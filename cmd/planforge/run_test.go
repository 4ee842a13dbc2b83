package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planforge/planforge/internal/config"
)

func TestLoadBrief(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.yaml")
	content := `project: Website
industry: Technology
project_objectives: Create a website for a small business
team_members:
  - John Doe (Project Manager)
  - Jane Doe (Software Engineer)
project_requirements:
  - Responsive design
  - Blog section
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write brief: %v", err)
	}

	b, err := loadBrief(path)
	if err != nil {
		t.Fatalf("loadBrief() error = %v", err)
	}

	if b.Project != "Website" {
		t.Errorf("Project = %q, want %q", b.Project, "Website")
	}
	if b.Industry != "Technology" {
		t.Errorf("Industry = %q, want %q", b.Industry, "Technology")
	}
	if string(b.Objectives) != "Create a website for a small business" {
		t.Errorf("Objectives = %q, want scalar value", b.Objectives)
	}

	team := string(b.TeamMembers)
	for _, member := range []string{"John Doe (Project Manager)", "Jane Doe (Software Engineer)"} {
		if !strings.Contains(team, "- "+member) {
			t.Errorf("TeamMembers missing %q:\n%s", member, team)
		}
	}
	if !strings.Contains(string(b.Requirements), "- Responsive design") {
		t.Errorf("Requirements not joined as bullets: %q", b.Requirements)
	}
}

func TestLoadBriefScalarLists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.yaml")
	content := `project: App
project_objectives: Ship the app
team_members: |
  - Solo Dev
project_requirements: Just work
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write brief: %v", err)
	}

	b, err := loadBrief(path)
	if err != nil {
		t.Fatalf("loadBrief() error = %v", err)
	}
	if !strings.Contains(string(b.TeamMembers), "Solo Dev") {
		t.Errorf("TeamMembers = %q, want block scalar preserved", b.TeamMembers)
	}
	if string(b.Requirements) != "Just work" {
		t.Errorf("Requirements = %q, want %q", b.Requirements, "Just work")
	}
}

func TestLoadBriefMissingFile(t *testing.T) {
	if _, err := loadBrief(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing brief file, got nil")
	}
}

func TestBuildInputsFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.yaml")
	content := `project: Website
industry: Technology
project_objectives: Original objectives
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write brief: %v", err)
	}

	runBriefFile = path
	runProject = "Mobile App"
	runObjectives = ""
	defer func() {
		runBriefFile = ""
		runProject = ""
	}()

	inputs, err := buildInputs()
	if err != nil {
		t.Fatalf("buildInputs() error = %v", err)
	}
	if inputs.Project != "Mobile App" {
		t.Errorf("Project = %q, want flag override %q", inputs.Project, "Mobile App")
	}
	if inputs.Industry != "Technology" {
		t.Errorf("Industry = %q, want brief value %q", inputs.Industry, "Technology")
	}
	if inputs.Objectives != "Original objectives" {
		t.Errorf("Objectives = %q, want brief value", inputs.Objectives)
	}
}

func TestCreateCompleterUnknownProvider(t *testing.T) {
	cfg := config.Default()
	if _, err := createCompleter(cfg, "mainframe", ""); err == nil {
		t.Error("expected error for unknown provider, got nil")
	}
}

func TestCreateCompleterOpenAIModelOverride(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAI.APIKey = "test-key"

	completer, err := createCompleter(cfg, config.ProviderOpenAI, "gpt-4o-mini")
	if err != nil {
		t.Fatalf("createCompleter() error = %v", err)
	}
	if completer.Model() != "gpt-4o-mini" {
		t.Errorf("Model() = %q, want %q", completer.Model(), "gpt-4o-mini")
	}
}
