package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/planmeet/meeting-scheduler-backend/apperror"
	"github.com/planmeet/meeting-scheduler-backend/config"
	"github.com/planmeet/meeting-scheduler-backend/utils"
)

// Service wraps business logic for events
type Service struct {
	Repo    *Repository
	baseURL string
}

func NewService(r *Repository, cfg *config.Config) *Service {
	return &Service{Repo: r, baseURL: cfg.BaseURL}
}

// ===========================
// Create Event
//
// Validates the time-of-day window, the timezone, and that the supplied
// sub-entity set matches the event type, then creates the event and all
// its dates/weekdays atomically.
func (s *Service) CreateEvent(req *CreateEventRequest) (*Event, error) {
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, apperror.Validation("start_time", "invalid time format. Use HH:MM")
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, apperror.Validation("end_time", "invalid time format. Use HH:MM")
	}
	if !start.Before(end) {
		return nil, apperror.Validation("start_time", "start time must be before the end time")
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	if !utils.IsValidTimeZone(tz) {
		return nil, apperror.Validation("timezone", fmt.Sprintf("'%s' is not a valid time zone", tz))
	}

	switch req.EventType {
	case TypeSpecificDates:
		if len(req.DaysOfWeek) > 0 {
			return nil, apperror.Validation("days_of_week", "for events with specific dates, days_of_week must not be provided")
		}
		if len(req.Dates) == 0 {
			return nil, apperror.Validation("dates", "at least one date is required for specific_dates events")
		}
	case TypeDaysOfWeek:
		if len(req.Dates) > 0 {
			return nil, apperror.Validation("dates", "for events with days of week, dates must not be provided")
		}
		if len(req.DaysOfWeek) == 0 {
			return nil, apperror.Validation("days_of_week", "at least one weekday is required for days_of_week events")
		}
	default:
		return nil, apperror.Validation("event_type", fmt.Sprintf("'%s' is not a valid choice", req.EventType))
	}

	e := &Event{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  tz,
		UniqueID:  uuid.New(),
		EventType: req.EventType,
	}

	for _, d := range req.Dates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, apperror.Validation("dates", "invalid date format. Use YYYY-MM-DD")
		}
		e.Dates = append(e.Dates, EventDate{Date: datatypes.Date(parsed)})
	}

	for _, label := range req.DaysOfWeek {
		day, ok := DayValueFromLabel(label)
		if !ok {
			return nil, apperror.Validation("days_of_week", fmt.Sprintf("'%s' is not a valid choice", label))
		}
		e.DaysOfWeek = append(e.DaysOfWeek, EventWeekday{Day: day})
	}

	if err := s.Repo.CreateEvent(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ===========================
// Get Event by public link id
func (s *Service) GetByUniqueID(uniqueID string) (*Event, error) {
	if _, err := uuid.Parse(uniqueID); err != nil {
		return nil, apperror.NotFound("event not found")
	}
	e, err := s.Repo.FindByUniqueID(uniqueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("event not found")
		}
		return nil, err
	}
	return e, nil
}

// ===========================
// Resolve a configured weekday of the event
func (s *Service) GetWeekday(eventID uint, day int) (*EventWeekday, error) {
	w, err := s.Repo.FindWeekday(eventID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("event has no such weekday configured")
		}
		return nil, err
	}
	return w, nil
}

// PublicLink builds the shareable URL for an event. The UUID is the only
// way to address the event; events are never listed.
func (s *Service) PublicLink(e *Event) string {
	return s.baseURL + "/" + e.UniqueID.String()
}
