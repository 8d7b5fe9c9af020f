package expiry

import (
	"testing"
	"time"

	"Health-Kitchen-Backend/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassify_BoundaryTable(t *testing.T) {
	ref := time.Date(2024, time.January, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		date     string
		label    string
		category domain.ExpiryCategory
	}{
		{"2024-01-05", "expired (5 days ago)", domain.ExpiryExpired},
		{"2024-01-09", "expired (1 days ago)", domain.ExpiryExpired},
		{"1700-01-01", "expired (118347 days ago)", domain.ExpiryExpired},
		{"0001-01-01", "expired (738894 days ago)", domain.ExpiryExpired},
		{"2500-01-01", "fresh", domain.ExpiryFresh},
		{"2024-01-10", "expiring soon", domain.ExpiringSoon},
		{"2024-01-13", "expiring soon", domain.ExpiringSoon},
		{"2024-01-14", "use this week", domain.ExpiryUseThisWeek},
		{"2024-01-17", "use this week", domain.ExpiryUseThisWeek},
		{"2024-01-18", "fresh", domain.ExpiryFresh},
		{"", "unknown", domain.ExpiryUnknown},
		{"   ", "unknown", domain.ExpiryUnknown},
		{"not-a-date", "invalid date", domain.ExpiryInvalid},
		{"2024-13-01", "invalid date", domain.ExpiryInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := Classify(tt.date, ref)
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestClassify_UsesReferenceCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	ref := time.Date(2024, time.January, 10, 23, 59, 0, 0, loc)

	assert.Equal(t, "expiring soon", Classify("2024-01-10", ref).Label)
	assert.Equal(t, "expired (1 days ago)", Classify("2024-01-09", ref).Label)
}

func TestClassify_AlertCategories(t *testing.T) {
	ref := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, Classify("2024-01-01", ref).Category.NeedsAlert())
	assert.True(t, Classify("2024-01-12", ref).Category.NeedsAlert())
	assert.False(t, Classify("2024-01-15", ref).Category.NeedsAlert())
	assert.False(t, Classify("", ref).Category.NeedsAlert())
}
