package promotionschedule

import (
	"math"
	"time"
)

type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyThisWeek Urgency = "this_week"
	UrgencySoon     Urgency = "next_2_weeks"
	UrgencyLater    Urgency = "later"
)

// DaysUntil counts whole days from now to scheduled, rounding partial days up.
// A negative result means the date has passed.
func DaysUntil(scheduled, now time.Time) int {
	return int(math.Ceil(scheduled.Sub(now).Hours() / 24))
}

func UrgencyOf(scheduled, now time.Time) Urgency {
	days := DaysUntil(scheduled, now)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 7:
		return UrgencyThisWeek
	case days <= 14:
		return UrgencySoon
	default:
		return UrgencyLater
	}
}

func (u Urgency) Label() string {
	switch u {
	case UrgencyOverdue:
		return "Overdue"
	case UrgencyThisWeek:
		return "This Week"
	case UrgencySoon:
		return "Next 2 Weeks"
	default:
		return "Later"
	}
}
