package availability

import (
	"time"

	"github.com/planmeet/meeting-scheduler-backend/internal/event"
)

// SpecificDateAvailability marks an absolute time range an attendee of a
// specific_dates event is free. A slot is identified by its start alone:
// the unique key deliberately omits the end time, so a toggle with the
// same start matches regardless of the stored end.
type SpecificDateAvailability struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AttendeeID uint      `gorm:"not null;uniqueIndex:idx_sda_attendee_start" json:"attendee_id"`
	StartTime  time.Time `gorm:"not null;uniqueIndex:idx_sda_attendee_start" json:"start_time"`
	EndTime    time.Time `gorm:"not null" json:"end_time"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"-"`
}

// DayOfWeekAvailability marks a one-hour recurring slot on one of the
// event's configured weekdays.
type DayOfWeekAvailability struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AttendeeID     uint      `gorm:"not null;uniqueIndex:idx_dwa_attendee_day_hour" json:"attendee_id"`
	EventWeekdayID uint      `gorm:"not null;uniqueIndex:idx_dwa_attendee_day_hour" json:"event_weekday_id"`
	StartHour      int       `gorm:"not null;uniqueIndex:idx_dwa_attendee_day_hour" json:"start_hour"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"-"`
}

// ===============================
// Toggle Request
// ===============================

// ToggleRequest is the shape-dispatched slot selector. StartTime/EndTime
// (RFC 3339) address a specific_dates slot; Day/StartHour address a
// days_of_week slot. Supplying the wrong pair for the event's shape is a
// validation failure.
type ToggleRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Day       string `json:"day"`
	StartHour *int   `json:"start_hour"`
}

// ToggleResult reports which side of the toggle ran. Exactly one field is
// set: Created carries the new slot descriptor, Removed reports deletion.
type ToggleResult struct {
	Created *event.SlotEntry `json:"created,omitempty"`
	Removed bool             `json:"removed,omitempty"`
}
