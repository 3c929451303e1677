// Package query holds the list query shape shared by every resource listing.
package query

import (
	"strings"

	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
)

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

func (f PageFilter) Limit() int {
	return f.PageSize
}

// Validate rejects non-positive pages and page sizes outside 1..MaxPageSize.
func (f PageFilter) Validate() error {
	if f.Page < 1 {
		return errors.NewInvalidQueryError("page must be a positive integer")
	}
	if f.PageSize < 1 {
		return errors.NewInvalidQueryError("page_size must be a positive integer")
	}
	if f.PageSize > constants.MaxPageSize {
		return errors.NewInvalidQueryError("page_size is too large",
			"page_size must not exceed 100")
	}
	return nil
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// Validate accepts an empty order or asc/desc in any case.
func (f SortFilter) Validate() error {
	if f.SortOrder == "" || strings.EqualFold(f.SortOrder, "asc") || strings.EqualFold(f.SortOrder, "desc") {
		return nil
	}
	return errors.NewInvalidQueryError("order must be asc or desc")
}

// ListQuery is the caller-facing list request: free text search, equality filters
// on foreign keys, an optional scope, sorting and pagination.
type ListQuery struct {
	PageFilter
	SortFilter
	Search  string
	Filters map[string]string
	Scope   string
	ScopeID string
}

type FilterOption func(*ListQuery)

func WithPage(page, pageSize int) FilterOption {
	return func(q *ListQuery) {
		q.Page = page
		q.PageSize = pageSize
	}
}

func WithSort(sortBy, sortOrder string) FilterOption {
	return func(q *ListQuery) {
		q.SortBy = sortBy
		q.SortOrder = sortOrder
	}
}

func WithSearch(search string) FilterOption {
	return func(q *ListQuery) {
		q.Search = search
	}
}

func WithFilter(column, value string) FilterOption {
	return func(q *ListQuery) {
		if q.Filters == nil {
			q.Filters = make(map[string]string)
		}
		q.Filters[column] = value
	}
}

func WithScope(scope, scopeID string) FilterOption {
	return func(q *ListQuery) {
		q.Scope = scope
		q.ScopeID = scopeID
	}
}

func NewListQuery(opts ...FilterOption) ListQuery {
	q := ListQuery{
		PageFilter: PageFilter{
			Page:     constants.DefaultPage,
			PageSize: constants.DefaultPageSize,
		},
		SortFilter: SortFilter{
			SortOrder: "asc",
		},
	}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

func (q ListQuery) Validate() error {
	if err := q.PageFilter.Validate(); err != nil {
		return err
	}
	if err := q.SortFilter.Validate(); err != nil {
		return err
	}
	if (q.Scope == "") != (q.ScopeID == "") {
		return errors.NewInvalidQueryError("scope and scope_id must be given together")
	}
	return nil
}
