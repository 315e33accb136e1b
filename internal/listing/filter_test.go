package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"asset-registry-backend/internal/model"
)

func sampleSurveys() []model.InventorySurvey {
	return []model.InventorySurvey{
		{
			ID: 1, Date: "2026-08-20",
			Location:  model.Location{Name: "Chemistry Lab"},
			Submitter: model.Staff{Name: "Rosa Fields"},
		},
		{
			ID: 2, Date: "2026-07-01",
			Location:  model.Location{Name: "Library"},
			Submitter: model.Staff{Name: "Marcus Ortiz"},
		},
		{
			ID: 3, Date: "2025-08-20",
			Location:  model.Location{Name: "Computer Lab"},
			Submitter: model.Staff{Name: "Rosa Fields"},
		},
	}
}

func ids(surveys []model.InventorySurvey) []int64 {
	out := make([]int64, len(surveys))
	for i, s := range surveys {
		out[i] = s.ID
	}
	return out
}

func TestApply(t *testing.T) {
	surveys := sampleSurveys()

	testCases := []struct {
		name     string
		filter   Filter
		expected []int64
	}{
		{"empty filter matches all", Filter{}, []int64{1, 2, 3}},
		{"date substring", Filter{Date: "2026"}, []int64{1, 2}},
		{"date full", Filter{Date: "2025-08-20"}, []int64{3}},
		{"location substring", Filter{Location: "lab"}, []int64{1, 3}},
		{"location case-insensitive", Filter{Location: "LIBRARY"}, []int64{2}},
		{"submitter substring", Filter{Submitter: "rosa"}, []int64{1, 3}},
		{"criteria are AND-combined", Filter{Date: "08-20", Location: "chem"}, []int64{1}},
		{"no match", Filter{Submitter: "nobody"}, []int64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(surveys, tc.filter)
			assert.Equal(t, tc.expected, ids(got))
		})
	}
}
