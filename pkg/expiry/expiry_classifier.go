package expiry

import (
	"fmt"
	"strings"
	"time"

	"Health-Kitchen-Backend/domain"
)

const (
	soonDays = 3
	weekDays = 7

	secondsPerDay = 24 * 60 * 60
)

// Status pairs the coarse category with its display label.
type Status struct {
	Category domain.ExpiryCategory
	Label    string
}

// Classify labels an expiry date ("YYYY-MM-DD") relative to the calendar
// date of reference. It never fails: unparsable input yields "invalid date".
func Classify(expiryDate string, reference time.Time) Status {
	expiryDate = strings.TrimSpace(expiryDate)
	if expiryDate == "" {
		return Status{Category: domain.ExpiryUnknown, Label: "unknown"}
	}

	exp, err := time.Parse(domain.DateLayout, expiryDate)
	if err != nil {
		return Status{Category: domain.ExpiryInvalid, Label: "invalid date"}
	}

	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	// Both are UTC midnights; Duration would saturate past ~292 years.
	days := int((exp.Unix() - ref.Unix()) / secondsPerDay)

	switch {
	case days < 0:
		return Status{Category: domain.ExpiryExpired, Label: fmt.Sprintf("expired (%d days ago)", -days)}
	case days <= soonDays:
		return Status{Category: domain.ExpiringSoon, Label: "expiring soon"}
	case days <= weekDays:
		return Status{Category: domain.ExpiryUseThisWeek, Label: "use this week"}
	default:
		return Status{Category: domain.ExpiryFresh, Label: "fresh"}
	}
}
