package resource

import "context"

// ScopeFilter binds a scope to the owning context's key value.
type ScopeFilter struct {
	Scope Scope
	Value any
}

// ListSpec is a fully validated listing request. A zero Limit returns every match.
type ListSpec struct {
	Search     string
	Filters    map[string]any
	Scopes     []ScopeFilter
	SortColumn string
	Desc       bool
	Offset     int
	Limit      int
}

// Repository persists records of one entity type.
type Repository[T any] interface {
	// List returns one page of matching records and the total match count.
	List(ctx context.Context, spec ListSpec) ([]*T, int64, error)

	// Get loads a record with its includes, or returns a NotFound error. A
	// record outside any of the given scopes is reported as not found.
	Get(ctx context.Context, key Key, scopes ...ScopeFilter) (*T, error)

	// Create inserts the record; database-generated keys are written back.
	Create(ctx context.Context, record *T) error

	// Save overwrites every column of an existing record.
	Save(ctx context.Context, record *T) error

	// Delete removes the record honouring dependent policies.
	Delete(ctx context.Context, key Key) error
}
