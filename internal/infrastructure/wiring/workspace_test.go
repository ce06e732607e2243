package wiring

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
	"github.com/lexguard/lexguard/pkg/storage"
)

func TestNewWorkspace(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}

	if ws.Registry.Len() != 3 {
		t.Errorf("registry has %d rules, want the 3 built-ins", ws.Registry.Len())
	}
	if ws.Compliance == nil || ws.Legal == nil || ws.Audit == nil {
		t.Fatal("services not wired")
	}

	// The wired services work end to end against the filesystem repo.
	if err := ws.Repo.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	checks, err := ws.Compliance.CheckCompliance(context.Background(), "doc-1",
		"This is my last will and testament.", nil)
	if err != nil {
		t.Fatalf("CheckCompliance: %v", err)
	}
	if len(checks) == 0 {
		t.Error("expected at least one check for will content")
	}

	events, err := ws.Audit.GetTimeline()
	if err != nil {
		t.Fatalf("GetTimeline: %v", err)
	}
	if len(events) != 1 || events[0].Action != "compliance.check" {
		t.Errorf("timeline = %+v, want one compliance.check event", events)
	}
}

func TestBuildRegistry_MergesWorkspaceRules(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	ruleYAML := `rules:
  - id: workspace-rule
    name: Workspace Rule
    category: privacy
    severity: low
    keywords: ["workspace"]
    validation_logic:
      type: keyword
      rules:
        - condition: contains personal data
          action: flag
          message: workspace flag
      confidence: 0.4
    version: "1.0"
`
	path, err := repo.ResolvePath(storage.RulesFile)
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	if err := os.WriteFile(path, []byte(ruleYAML), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	registry, err := BuildRegistry(repo, compliance.DefaultConditions(), domain.SystemClock{})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if registry.Len() != 4 {
		t.Errorf("registry has %d rules, want 3 built-ins + 1 workspace rule", registry.Len())
	}
	if _, err := registry.Get("workspace-rule"); err != nil {
		t.Errorf("workspace rule not loaded: %v", err)
	}
}

func TestBuildRegistry_RejectsRuleWithUnknownCondition(t *testing.T) {
	root := t.TempDir()
	repo := storage.NewFilesystemRepository(root)
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	ruleYAML := `rules:
  - id: dangling
    name: Dangling Rule
    category: privacy
    severity: low
    validation_logic:
      type: keyword
      rules:
        - condition: reads minds
          action: flag
          message: never
    version: "1.0"
`
	path, _ := repo.ResolvePath(storage.RulesFile)
	if err := os.WriteFile(path, []byte(ruleYAML), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := BuildRegistry(repo, compliance.DefaultConditions(), domain.SystemClock{}); err == nil {
		t.Error("expected error for rule naming an unregistered condition")
	}
}

func TestNewWorkspace_BadRuleFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, storage.LexguardDir), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	bad := filepath.Join(root, storage.LexguardDir, storage.RulesFile)
	if err := os.WriteFile(bad, []byte("rules: 42"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewWorkspace(root); err == nil {
		t.Error("expected error for malformed workspace rule file")
	}
}
