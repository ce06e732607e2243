package domain

// AuditLogger records engine actions to a tamper-evident trail.
type AuditLogger interface {
	Log(action string, actor string, metadata map[string]interface{}) error
}

// EventStore persists the audit event chain.
type EventStore interface {
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}
