package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitTypeFromLabel(t *testing.T) {
	cases := []struct {
		label string
		want  VisitType
		ok    bool
	}{
		{"زيارة نهارية", VisitTypeDay, true},
		{"مبيت", VisitTypeOvernight, true},
		{"Day Visit", VisitTypeDay, true},
		{"Overnight Stay", VisitTypeOvernight, true},
		{"DAY_VISIT", VisitTypeDay, true},
		{"OVERNIGHT", VisitTypeOvernight, true},
		{"day visit", "", false},
		{"weekend", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := VisitTypeFromLabel(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		if tc.ok {
			assert.Equal(t, tc.want, got, "label %q", tc.label)
		}
	}
}

func TestVisitTypeLabel(t *testing.T) {
	assert.Equal(t, "زيارة نهارية", VisitTypeDay.Label("ar"))
	assert.Equal(t, "مبيت", VisitTypeOvernight.Label("ar"))
	assert.Equal(t, "Day Visit", VisitTypeDay.Label("en"))
	assert.Equal(t, "Overnight Stay", VisitTypeOvernight.Label("en"))
}
