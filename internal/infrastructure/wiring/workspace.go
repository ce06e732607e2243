package wiring

import (
	"fmt"
	"log/slog"

	"github.com/lexguard/lexguard/pkg/application"
	"github.com/lexguard/lexguard/pkg/domain"
	"github.com/lexguard/lexguard/pkg/domain/compliance"
	"github.com/lexguard/lexguard/pkg/storage"
)

// Workspace bundles the wired services for a project root.
type Workspace struct {
	Repo       *storage.FilesystemRepository
	Documents  *storage.MemoryDocumentStore
	Conditions *compliance.ConditionRegistry
	Registry   *compliance.Registry
	Audit      *application.AuditService
	Compliance *application.ComplianceService
	Legal      *application.LegalService
}

// NewWorkspace wires the engine against <root>/.lexguard. The rule
// registry combines the built-in rules with any workspace rule file.
func NewWorkspace(root string) (*Workspace, error) {
	repo := storage.NewFilesystemRepository(root)
	clock := domain.SystemClock{}
	ids := domain.UUIDGenerator{}
	logger := slog.Default()

	conditions := compliance.DefaultConditions()
	registry, err := BuildRegistry(repo, conditions, clock)
	if err != nil {
		return nil, err
	}

	documents := storage.NewMemoryDocumentStore()
	audit := application.NewAuditService(repo, clock, ids)
	evaluator := compliance.NewEvaluator(conditions, ids, logger)
	complianceSvc := application.NewComplianceService(registry, evaluator, repo, audit, clock, ids, logger)
	legalSvc := application.NewLegalService(documents, repo, complianceSvc, audit, clock, ids, logger)

	return &Workspace{
		Repo:       repo,
		Documents:  documents,
		Conditions: conditions,
		Registry:   registry,
		Audit:      audit,
		Compliance: complianceSvc,
		Legal:      legalSvc,
	}, nil
}

// BuildRegistry compiles the built-in rules plus the workspace rule
// file into a fresh registry.
func BuildRegistry(repo *storage.FilesystemRepository, conditions *compliance.ConditionRegistry, clock domain.Clock) (*compliance.Registry, error) {
	rules := compliance.BuiltinRules(clock.Now())

	extra, err := repo.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("load workspace rules: %w", err)
	}
	rules = append(rules, extra...)

	registry, err := compliance.NewRegistry(conditions, rules...)
	if err != nil {
		return nil, fmt.Errorf("build rule registry: %w", err)
	}
	return registry, nil
}
