package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"labmanager/internal/shared/constants"
	"labmanager/internal/shared/errors"
	"labmanager/internal/shared/query"
)

// reservedListParams are the query parameters that are not column filters.
var reservedListParams = map[string]bool{
	"search":    true,
	"sort":      true,
	"order":     true,
	"page":      true,
	"page_size": true,
	"scope":     true,
	"scope_id":  true,
}

// ParseListQuery reads search, sort, order, page, page_size, scope, scope_id and any
// remaining single-valued parameters as equality filters. Parameters starting with
// "_" (cache busters such as "_=1700000000") are client plumbing and ignored.
// Malformed pagination is an InvalidQuery error, never silently replaced by defaults.
func ParseListQuery(c *gin.Context) (query.ListQuery, error) {
	page, err := parsePositiveInt(c, "page", constants.DefaultPage)
	if err != nil {
		return query.ListQuery{}, err
	}
	pageSize, err := parsePositiveInt(c, "page_size", constants.DefaultPageSize)
	if err != nil {
		return query.ListQuery{}, err
	}

	opts := []query.FilterOption{
		query.WithPage(page, pageSize),
		query.WithSearch(strings.TrimSpace(c.Query("search"))),
		query.WithScope(c.Query("scope"), c.Query("scope_id")),
	}
	if sortBy := c.Query("sort"); sortBy != "" {
		opts = append(opts, query.WithSort(sortBy, c.DefaultQuery("order", "asc")))
	}
	for key, values := range c.Request.URL.Query() {
		if reservedListParams[key] || strings.HasPrefix(key, "_") || len(values) == 0 || values[0] == "" {
			continue
		}
		opts = append(opts, query.WithFilter(key, values[0]))
	}

	q := query.NewListQuery(opts...)
	if err := q.Validate(); err != nil {
		return query.ListQuery{}, err
	}
	return q, nil
}

func parsePositiveInt(c *gin.Context, key string, defaultVal int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.NewInvalidQueryError(key+" must be a positive integer", "got "+strconv.Quote(raw))
	}
	return n, nil
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
