package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
	"github.com/lexguard/lexguard/pkg/domain/legal"
)

func newTestRepo(t *testing.T) *FilesystemRepository {
	t.Helper()
	repo := NewFilesystemRepository(t.TempDir())
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return repo
}

func TestInitialize(t *testing.T) {
	root := t.TempDir()
	repo := NewFilesystemRepository(root)

	if repo.IsInitialized() {
		t.Error("fresh workspace should not be initialized")
	}
	if err := repo.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !repo.IsInitialized() {
		t.Error("workspace should be initialized")
	}

	info, err := os.Stat(filepath.Join(root, LexguardDir))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0700 {
		t.Errorf("directory mode = %o, want 0700", info.Mode().Perm())
	}
}

func TestResolvePath(t *testing.T) {
	repo := NewFilesystemRepository("/workspace")

	tests := []struct {
		name     string
		filename string
		wantErr  bool
	}{
		{"plain file", RulesFile, false},
		{"empty", "", true},
		{"traversal", "../escape.yaml", true},
		{"nested traversal", "sub/../../escape.yaml", true},
		{"subdirectory", "sub/rules.yaml", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.ResolvePath(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResolvePath(%q) err = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}

func TestRulesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	rules := []*compliance.ComplianceRule{
		{
			ID:           "custom-rule",
			Name:         "Custom Rule",
			Category:     compliance.CategoryPrivacy,
			Jurisdiction: "EU",
			Regulation:   "GDPR",
			Severity:     compliance.SeverityHigh,
			Keywords:     []string{"custom"},
			ValidationLogic: compliance.ValidationLogic{
				Type: compliance.ValidationKeyword,
				Rules: []compliance.ValidationStep{
					{Condition: "contains personal data", Action: compliance.ActionRequire, Message: "check it"},
				},
				Confidence: 0.5,
			},
			Version: "1.0",
		},
	}

	if err := repo.SaveRules(rules); err != nil {
		t.Fatalf("SaveRules: %v", err)
	}

	loaded, err := repo.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d rules, want 1", len(loaded))
	}
	got := loaded[0]
	if got.ID != "custom-rule" || got.Severity != compliance.SeverityHigh {
		t.Errorf("rule = %+v", got)
	}
	if len(got.ValidationLogic.Rules) != 1 || got.ValidationLogic.Rules[0].Action != compliance.ActionRequire {
		t.Errorf("validation logic = %+v", got.ValidationLogic)
	}
}

func TestLoadRules_MissingFileIsNotAnError(t *testing.T) {
	repo := newTestRepo(t)
	rules, err := repo.LoadRules()
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if rules != nil {
		t.Errorf("got %v, want nil for a missing rule file", rules)
	}
}

func TestLoadRules_SchemaRejectsMalformedFile(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing severity",
			yaml: `rules:
  - id: r1
    name: Rule One
    category: privacy
    validation_logic:
      type: keyword
      rules: []
`,
		},
		{
			name: "invalid severity enum",
			yaml: `rules:
  - id: r1
    name: Rule One
    category: privacy
    severity: catastrophic
    validation_logic:
      type: keyword
      rules: []
`,
		},
		{
			name: "invalid step action",
			yaml: `rules:
  - id: r1
    name: Rule One
    category: privacy
    severity: low
    validation_logic:
      type: keyword
      rules:
        - condition: contains personal data
          action: obliterate
          message: nope
`,
		},
		{
			name: "rules not a list",
			yaml: `rules: 42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			path, err := repo.ResolvePath(RulesFile)
			if err != nil {
				t.Fatalf("ResolvePath: %v", err)
			}
			if err := os.WriteFile(path, []byte(tt.yaml), 0600); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := repo.LoadRules(); err == nil {
				t.Error("expected schema validation error")
			}
		})
	}
}

func TestChecksRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	checks := []compliance.ComplianceCheck{
		{
			ID:         "chk-1",
			DocumentID: "doc-1",
			RuleID:     "gdpr-privacy",
			Status:     compliance.StatusNonCompliant,
			Severity:   compliance.SeverityCritical,
			Findings: []compliance.Finding{
				{ID: "f-1", Type: compliance.FindingViolation, Severity: compliance.SeverityCritical},
			},
			CheckedAt: now,
		},
	}

	if err := repo.SaveChecks("doc-1", checks); err != nil {
		t.Fatalf("SaveChecks: %v", err)
	}

	loaded, err := repo.LoadChecks("doc-1")
	if err != nil {
		t.Fatalf("LoadChecks: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "chk-1" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if !loaded[0].CheckedAt.Equal(now) {
		t.Errorf("CheckedAt = %v, want %v", loaded[0].CheckedAt, now)
	}

	// Saving a second document leaves the first intact.
	if err := repo.SaveChecks("doc-2", []compliance.ComplianceCheck{{ID: "chk-2", DocumentID: "doc-2"}}); err != nil {
		t.Fatalf("SaveChecks: %v", err)
	}
	all, err := repo.LoadAllChecks()
	if err != nil {
		t.Fatalf("LoadAllChecks: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d documents, want 2", len(all))
	}

	// Re-saving replaces wholesale.
	if err := repo.SaveChecks("doc-1", nil); err != nil {
		t.Fatalf("SaveChecks: %v", err)
	}
	loaded, _ = repo.LoadChecks("doc-1")
	if len(loaded) != 0 {
		t.Errorf("got %d checks after wholesale replace, want 0", len(loaded))
	}
}

func TestLoadChecks_MissingFile(t *testing.T) {
	repo := newTestRepo(t)
	checks, err := repo.LoadChecks("doc-1")
	if err != nil {
		t.Fatalf("LoadChecks: %v", err)
	}
	if len(checks) != 0 {
		t.Errorf("got %v, want none", checks)
	}
}

func TestReviewsUpsert(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	review := &legal.LegalReview{
		ID:         "rev-1",
		DocumentID: "doc-1",
		ReviewType: legal.ReviewContract,
		Urgency:    legal.UrgencyNormal,
		Status:     legal.ReviewPending,
		CreatedAt:  now,
		DueDate:    now.AddDate(0, 0, 7),
	}
	if err := repo.SaveReview(review); err != nil {
		t.Fatalf("SaveReview: %v", err)
	}

	loaded, err := repo.LoadReview("rev-1")
	if err != nil {
		t.Fatalf("LoadReview: %v", err)
	}
	if loaded.Status != legal.ReviewPending {
		t.Errorf("Status = %s", loaded.Status)
	}

	// Upsert by ID, not append.
	review.Status = legal.ReviewInProgress
	if err := repo.SaveReview(review); err != nil {
		t.Fatalf("SaveReview: %v", err)
	}
	reviews, err := repo.LoadReviews()
	if err != nil {
		t.Fatalf("LoadReviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("got %d reviews, want 1 after upsert", len(reviews))
	}
	if reviews[0].Status != legal.ReviewInProgress {
		t.Errorf("Status = %s, want %s", reviews[0].Status, legal.ReviewInProgress)
	}
}

func TestLoadReview_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.LoadReview("ghost"); !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("err = %v, want ErrReviewNotFound", err)
	}
}

func TestEventsAppendAndLoad(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	events := []domain.Event{
		{ID: "e-1", Timestamp: now, Action: "compliance.check", Actor: "system"},
		{ID: "e-2", Timestamp: now.Add(time.Minute), Action: "legal.review.requested", Actor: "system"},
	}
	for _, e := range events {
		if err := repo.RecordEvent(e); err != nil {
			t.Fatalf("RecordEvent: %v", err)
		}
	}

	loaded, err := repo.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d events, want 2", len(loaded))
	}
	if loaded[0].ID != "e-1" || loaded[1].ID != "e-2" {
		t.Errorf("order = %q, %q", loaded[0].ID, loaded[1].ID)
	}
}

func TestLoadEvents_SkipsMalformedLines(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.RecordEvent(domain.Event{ID: "e-1", Action: "compliance.check", Actor: "system"}); err != nil {
		t.Fatalf("RecordEvent: %v", err)
	}

	path, err := repo.ResolvePath(EventsFile)
	if err != nil {
		t.Fatalf("ResolvePath: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("not json at all\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	loaded, err := repo.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("got %d events, want 1 (malformed line skipped)", len(loaded))
	}
}

func TestMemoryDocumentStore(t *testing.T) {
	store := NewMemoryDocumentStore()
	store.Put("doc-1", "hello")

	content, found, err := store.GetDocumentContent(context.Background(), "doc-1")
	if err != nil || !found || content != "hello" {
		t.Errorf("GetDocumentContent = %q, %v, %v", content, found, err)
	}

	_, found, err = store.GetDocumentContent(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("GetDocumentContent: %v", err)
	}
	if found {
		t.Error("missing document reported as found")
	}
}
