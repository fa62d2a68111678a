// Package search implements the dashboard's text-and-status filter.
package search

import (
	"strings"

	"github.com/dmitrijs2005/sitereg/internal/common"
)

// Record is anything the dashboard can list.
type Record interface {
	SearchFields() []string
	StatusTag() string
}

// Matches reports whether query is a case-insensitive substring of one of
// r's search fields and r's status equals status (or status is "all" or
// empty).
func Matches(r Record, query, status string) bool {
	if status != "" && status != common.StatusAll && r.StatusTag() != status {
		return false
	}
	q := strings.ToLower(query)
	for _, f := range r.SearchFields() {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter returns the records matching query and status, in input order.
// The result is never nil.
func Filter[T Record](records []T, query, status string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(r, query, status) {
			out = append(out, r)
		}
	}
	return out
}
