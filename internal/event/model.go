package event

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event shapes. Exactly one family of sub-entities (dates or weekdays) is
// populated, matching EventType.
const (
	TypeSpecificDates = "specific_dates"
	TypeDaysOfWeek    = "days_of_week"
)

type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:MM"
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:MM"
	Timezone  string    `gorm:"type:varchar(50);not null;default:'UTC'" json:"timezone"`
	UniqueID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"unique_id"`
	EventType string    `gorm:"type:varchar(20);not null" json:"event_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Dates      []EventDate    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"dates"`
	DaysOfWeek []EventWeekday `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"days_of_week"`
}

// EventDate is one candidate calendar date of a specific_dates event.
type EventDate struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	EventID uint           `gorm:"not null;index" json:"-"`
	Date    datatypes.Date `gorm:"type:date;not null" json:"date"`
}

// EventWeekday is one recurring weekday of a days_of_week event.
// Day follows time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
type EventWeekday struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	EventID uint `gorm:"not null;index" json:"-"`
	Day     int  `gorm:"not null" json:"day"`
}

var dayLabels = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// DayLabel returns the display label for the weekday, or "" when the stored
// value is out of range.
func (w EventWeekday) DayLabel() string {
	if w.Day < 0 || w.Day > 6 {
		return ""
	}
	return dayLabels[w.Day]
}

// DayValueFromLabel resolves a weekday label (case-insensitive) to its
// numeric value.
func DayValueFromLabel(label string) (int, bool) {
	for i, l := range dayLabels {
		if strings.EqualFold(l, label) {
			return i, true
		}
	}
	return 0, false
}

func (w EventWeekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       uint   `json:"id"`
		Day      int    `json:"day"`
		DayLabel string `json:"day_label"`
	}{ID: w.ID, Day: w.Day, DayLabel: w.DayLabel()})
}

// ===============================
// Create Event Request
// ===============================

type CreateEventRequest struct {
	Name      string `json:"name" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // "HH:MM"
	EndTime   string `json:"end_time" binding:"required"`   // "HH:MM"
	Timezone  string `json:"timezone"`
	EventType string `json:"event_type" binding:"required"`

	Dates      []string `json:"dates"`        // "YYYY-MM-DD"
	DaysOfWeek []string `json:"days_of_week"` // weekday labels
}

// SlotEntry is one aggregated availability row in event responses.
// StartTime/EndTime are set for specific_dates events; Day/StartHour for
// days_of_week events. Attendee is filled only in event-wide rosters.
type SlotEntry struct {
	ID        uint       `json:"id"`
	Attendee  string     `json:"attendee,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Day       string     `json:"day,omitempty"`
	StartHour string     `json:"start_hour,omitempty"`
}

// RosterSource supplies aggregated availability for event detail responses.
// Implemented by the availability service; declared here so the import
// direction stays event <- availability.
type RosterSource interface {
	AttendeeSlots(ev *Event, attendeeID uint) ([]SlotEntry, error)
	EventRoster(ev *Event) ([]SlotEntry, error)
	ResponseCount(ev *Event) (int64, error)
}
