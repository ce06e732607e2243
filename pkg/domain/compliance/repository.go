package compliance

// CheckStore persists compliance check results per document. A store
// replaces a document's checks wholesale on each save; there is no
// incremental merging.
type CheckStore interface {
	SaveChecks(documentID string, checks []ComplianceCheck) error
	LoadChecks(documentID string) ([]ComplianceCheck, error)
	LoadAllChecks() (map[string][]ComplianceCheck, error)
}
