package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityInterval marks a contiguous run of free hours on one weekday.
// [StartHour, EndHour) is half-open: an interval 17..20 covers hours 17, 18
// and 19. Storage does not enforce non-overlap per (user, day); the schedule
// engine keeps intervals disjoint by replacing rather than duplicating.
type AvailabilityInterval struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	DayOfWeek int       `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartHour int       `json:"start_hour"`
	EndHour   int       `json:"end_hour"`
	CreatedAt time.Time `json:"created_at"`
}

// Covers reports whether the half-open hour [hour, hour+1) lies inside the
// interval.
func (iv AvailabilityInterval) Covers(hour int) bool {
	return iv.StartHour <= hour && hour+1 <= iv.EndHour
}

// Cell identifies one calendar grid cell: a weekday column and an hour row.
type Cell struct {
	Day  int `json:"day"`
	Hour int `json:"hour"`
}
