// Package query turns list-endpoint query strings into a normalized
// pagination, sort and filter descriptor that can be applied to a gorm query.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultLimit = 20

// Config declares the list policy of one route.
type Config struct {
	// DefaultSort is a column name, prefixed with "-" for descending order.
	DefaultSort string
	// MaxLimit is the largest accepted page size. Defaults to DefaultLimit.
	MaxLimit int
	// Filters are columns matched exactly when present in the query string.
	Filters []string
	// Search are columns matched by substring against the "search" value.
	Search []string
	// Sortable restricts the columns a caller may sort by.
	Sortable []string
}

type Sort struct {
	Field string
	Desc  bool
}

type Filters struct {
	Exact        map[string]interface{}
	Search       string
	SearchFields []string
}

// Params is the parsed descriptor.
type Params struct {
	Skip    int
	Limit   int
	Sort    Sort
	Filters Filters
	Count   bool
}

func Parse(cfg Config, values url.Values) Params {
	return Params{
		Skip:    parseSkip(values.Get("skip")),
		Limit:   parseLimit(cfg, values.Get("limit")),
		Sort:    parseSort(cfg, values.Get("sort")),
		Filters: parseFilters(cfg, values),
		Count:   parseCount(values.Get("count")),
	}
}

func parseSkip(raw string) int {
	skip, err := strconv.Atoi(raw)
	if err != nil || skip < 0 {
		return 0
	}
	return skip
}

func parseLimit(cfg Config, raw string) int {
	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		return DefaultLimit
	}
	return limit
}

func parseSort(cfg Config, raw string) Sort {
	if raw != "" {
		if s := toSort(raw); cfg.sortable(s.Field) {
			return s
		}
	}
	return toSort(cfg.DefaultSort)
}

func toSort(key string) Sort {
	if strings.HasPrefix(key, "-") {
		return Sort{Field: key[1:], Desc: true}
	}
	return Sort{Field: key}
}

func (c Config) sortable(field string) bool {
	for _, f := range c.Sortable {
		if f == field {
			return true
		}
	}
	return false
}

func parseFilters(cfg Config, values url.Values) Filters {
	filters := Filters{Exact: make(map[string]interface{})}

	for _, field := range cfg.Filters {
		if v := values.Get(field); v != "" {
			filters.Exact[field] = v
		}
	}

	if search := values.Get("search"); search != "" && len(cfg.Search) > 0 {
		filters.Search = search
		filters.SearchFields = append([]string(nil), cfg.Search...)
	}

	return filters
}

func parseCount(raw string) bool {
	if raw == "" {
		return false
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return true
}

// Where returns a copy of p with an additional exact-match filter. An
// existing filter on the same column is replaced.
func (p Params) Where(field string, value interface{}) Params {
	exact := make(map[string]interface{}, len(p.Filters.Exact)+1)
	for k, v := range p.Filters.Exact {
		exact[k] = v
	}
	exact[field] = value
	p.Filters.Exact = exact
	return p
}

// Filter applies the exact and substring filters only.
func (p Params) Filter(db *gorm.DB) *gorm.DB {
	fields := make([]string, 0, len(p.Filters.Exact))
	for field := range p.Filters.Exact {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		db = db.Where(clause.Eq{Column: clause.Column{Name: field}, Value: p.Filters.Exact[field]})
	}

	if p.Filters.Search != "" && len(p.Filters.SearchFields) > 0 {
		pattern := "%" + p.Filters.Search + "%"
		exprs := make([]clause.Expression, 0, len(p.Filters.SearchFields))
		for _, field := range p.Filters.SearchFields {
			exprs = append(exprs, clause.Like{Column: clause.Column{Name: field}, Value: pattern})
		}
		db = db.Where(clause.Or(exprs...))
	}

	return db
}

// Apply applies filters, ordering and pagination.
func (p Params) Apply(db *gorm.DB) *gorm.DB {
	db = p.Filter(db)
	if p.Sort.Field != "" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: p.Sort.Field}, Desc: p.Sort.Desc})
	}
	return db.Offset(p.Skip).Limit(p.Limit)
}
