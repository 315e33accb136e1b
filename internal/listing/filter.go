// Package listing filters persisted surveys for the review index screen.
package listing

import (
	"strings"

	"asset-registry-backend/internal/model"
)

// Filter is a set of optional substring criteria. Empty fields match
// everything; set fields are AND-combined.
type Filter struct {
	Date      string
	Location  string
	Submitter string
}

// Match reports whether a survey satisfies every set criterion,
// case-insensitively.
func (f Filter) Match(s model.InventorySurvey) bool {
	return containsFold(s.Date, f.Date) &&
		containsFold(s.Location.Name, f.Location) &&
		containsFold(s.Submitter.Name, f.Submitter)
}

// Apply returns the surveys matching the filter, preserving input order.
func Apply(surveys []model.InventorySurvey, f Filter) []model.InventorySurvey {
	matched := make([]model.InventorySurvey, 0, len(surveys))
	for _, s := range surveys {
		if f.Match(s) {
			matched = append(matched, s)
		}
	}
	return matched
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
