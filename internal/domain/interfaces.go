package domain

import "context"

// LoadIssue records a document that was skipped or partially read.
type LoadIssue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// LoadReport summarises one load run.
type LoadReport struct {
	Files    int         `json:"files"`
	Vehicles int         `json:"vehicles"`
	Ignored  int         `json:"ignored"`
	Issues   []LoadIssue `json:"issues,omitempty"`
}

// VehicleLoader turns document locations into vehicle records.
// Records are returned in a deterministic order.
type VehicleLoader interface {
	Load(ctx context.Context, paths []string) ([]*Vehicle, LoadReport, error)
}

// CompatibilityService defines the operations exposed by the application core.
type CompatibilityService interface {
	Summary() string
	Vehicles() []*Vehicle
	GroupByKind() []KindGroup
	Find(fullName string) (*Vehicle, bool)
	Matches(v *Vehicle) Compatibility
	Connectors() []ConnectorUsage
}
