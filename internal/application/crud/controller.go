// Package crud implements the generic, descriptor-driven resource controller:
// list, get, create, update, delete and export for every entity.
package crud

import (
	"context"

	"labmanager/internal/domain/resource"
	"labmanager/internal/domain/user"
	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/i18n"
	"labmanager/internal/shared/query"
)

// Restriction pins every operation to one owning context regardless of what
// the caller asked for. Resources without the named scope are not restricted.
type Restriction struct {
	Scope string
	Value any
}

// ListResult is one page of records.
type ListResult struct {
	Items    any
	Total    int64
	Page     int
	PageSize int
}

// ExportRequest selects the records of an export. With ScopeID set and Scope
// empty the entity's default scope applies.
type ExportRequest struct {
	Scope    string
	ScopeID  string
	Restrict []Restriction
	Lang     i18n.Lang
}

// Controller is the type-erased face of a Service, used by HTTP handlers.
// Records outside restrict are not found; writes that would move a record
// outside restrict are forbidden.
type Controller interface {
	Descriptor() *resource.Descriptor
	List(ctx context.Context, q query.ListQuery, restrict []Restriction) (*ListResult, error)
	Get(ctx context.Context, rawKey []string, restrict []Restriction) (any, error)
	Create(ctx context.Context, payload []byte, restrict []Restriction) (any, error)
	Update(ctx context.Context, rawKey []string, payload []byte, restrict []Restriction) (any, error)
	Delete(ctx context.Context, rawKey []string, restrict []Restriction) error
	Export(ctx context.Context, req ExportRequest) ([]byte, error)
}

// Renderer turns a table into a downloadable document.
type Renderer interface {
	Render(table resource.Table) ([]byte, error)
}

// RestrictionsFor returns the visibility limits attached to an account: a
// laboratory manager sees their laboratory, a rector their faculty.
func RestrictionsFor(u *user.User) []Restriction {
	if u == nil {
		return nil
	}
	switch u.RoleName() {
	case constants.RoleLabManager:
		if u.LabCode != nil {
			return []Restriction{{Scope: constants.ScopeLaboratory, Value: *u.LabCode}}
		}
	case constants.RoleRector:
		if u.FacultyID != nil {
			return []Restriction{{Scope: constants.ScopeFaculty, Value: *u.FacultyID}}
		}
	}
	return nil
}
