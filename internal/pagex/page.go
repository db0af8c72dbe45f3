// Package pagex holds the pagination primitives shared by list endpoints
// and repositories: request-side Params (page/size/sort) and the generic
// Page envelope returned to clients.
package pagex

import "strings"

const (
	DefaultSize = 20
	MaxSize     = 100
)

// Params describes one page request. Page is zero-based.
type Params struct {
	Page int
	Size int
	Sort string // "column" or "column,desc"
}

// Normalize clamps Params into valid bounds.
func (p Params) Normalize() Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Limit returns the SQL LIMIT value.
func (p Params) Limit() int { return p.Size }

// Offset returns the SQL OFFSET value.
func (p Params) Offset() int { return p.Page * p.Size }

// OrderBy resolves the Sort field against an allow-list of sortable columns
// and returns an ORDER BY expression. Unknown or empty sorts fall back to
// fallback. The allow-list keeps user input out of SQL identifiers.
func (p Params) OrderBy(allowed map[string]string, fallback string) string {
	column, dir, _ := strings.Cut(p.Sort, ",")
	expr, ok := allowed[strings.TrimSpace(column)]
	if !ok {
		return fallback
	}
	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return expr + " DESC"
	}
	return expr
}

// Page is one page of results plus totals.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
}

// NewPage assembles a Page envelope from repository output.
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int64(0)
	if params.Size > 0 {
		pages = (total + int64(params.Size) - 1) / int64(params.Size)
	}
	return Page[T]{
		Items:      items,
		Page:       params.Page,
		Size:       params.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}
