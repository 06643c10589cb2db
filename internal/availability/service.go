package availability

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planmeet/meeting-scheduler-backend/apperror"
	"github.com/planmeet/meeting-scheduler-backend/internal/event"
	"github.com/planmeet/meeting-scheduler-backend/utils"
)

// Service dispatches availability operations on the event shape and runs
// the aggregation queries behind event detail responses. It never mutates
// events or attendees.
type Service struct {
	Repo     *Repository
	EventSvc *event.Service
}

func NewService(r *Repository, eventSvc *event.Service) *Service {
	return &Service{Repo: r, EventSvc: eventSvc}
}

// ===========================
// Toggle
//
// Create-if-absent, remove-if-present: the same selector submitted twice
// is a round trip back to no record. The caller must authenticate as an
// attendee of the addressed event; a session for any other event is
// rejected without revealing whether the link resolves.
func (s *Service) Toggle(uniqueID string, attendeeID, attendeeEventID uint, req *ToggleRequest) (*ToggleResult, error) {
	ev, err := s.EventSvc.GetByUniqueID(uniqueID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, apperror.Forbidden("attendee does not belong to this event")
		}
		return nil, err
	}
	if ev.ID != attendeeEventID {
		return nil, apperror.Forbidden("attendee does not belong to this event")
	}

	switch ev.EventType {
	case event.TypeSpecificDates:
		return s.toggleSpecific(attendeeID, req)
	case event.TypeDaysOfWeek:
		return s.toggleDayOfWeek(ev, attendeeID, req)
	default:
		return nil, apperror.Validation("event_type", fmt.Sprintf("'%s' is not a valid choice", ev.EventType))
	}
}

func (s *Service) toggleSpecific(attendeeID uint, req *ToggleRequest) (*ToggleResult, error) {
	if req.Day != "" || req.StartHour != nil {
		return nil, apperror.Validation("day", "day/start_hour selectors are not valid for specific_dates events")
	}
	if req.StartTime == "" || req.EndTime == "" {
		return nil, apperror.Validation("start_time", "start_time and end_time are required for specific_dates events")
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperror.Validation("start_time", "invalid timestamp. Use RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, apperror.Validation("end_time", "invalid timestamp. Use RFC 3339")
	}
	if !end.After(start) {
		return nil, apperror.Validation("end_time", "end time must be after start time")
	}

	// The lookup key is (attendee, start): an existing record with a
	// different end still matches and gets removed.
	existing, err := s.Repo.FindSpecific(attendeeID, start)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		if err := s.Repo.DeleteSpecific(existing.ID); err != nil {
			return nil, err
		}
		return &ToggleResult{Removed: true}, nil
	}

	a := &SpecificDateAvailability{AttendeeID: attendeeID, StartTime: start, EndTime: end}
	if err := s.Repo.CreateSpecific(a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent toggle won the insert; surface its row.
			winner, ferr := s.Repo.FindSpecific(attendeeID, start)
			if ferr != nil {
				return nil, apperror.Conflict("availability already exists")
			}
			a = winner
		} else {
			return nil, err
		}
	}
	return &ToggleResult{Created: &event.SlotEntry{
		ID:        a.ID,
		StartTime: &a.StartTime,
		EndTime:   &a.EndTime,
	}}, nil
}

func (s *Service) toggleDayOfWeek(ev *event.Event, attendeeID uint, req *ToggleRequest) (*ToggleResult, error) {
	if req.StartTime != "" || req.EndTime != "" {
		return nil, apperror.Validation("start_time", "start_time/end_time selectors are not valid for days_of_week events")
	}
	if req.Day == "" || req.StartHour == nil {
		return nil, apperror.Validation("day", "day and start_hour are required for days_of_week events")
	}

	hour := *req.StartHour
	if hour < 0 || hour > 23 {
		return nil, apperror.Validation("start_hour", "start_hour must be between 0 and 23")
	}

	day, ok := event.DayValueFromLabel(req.Day)
	if !ok {
		return nil, apperror.Validation("day", fmt.Sprintf("'%s' is not a valid choice", req.Day))
	}

	weekday, err := s.EventSvc.GetWeekday(ev.ID, day)
	if err != nil {
		return nil, err
	}

	existing, err := s.Repo.FindDayOfWeek(attendeeID, weekday.ID, hour)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		if err := s.Repo.DeleteDayOfWeek(existing.ID); err != nil {
			return nil, err
		}
		return &ToggleResult{Removed: true}, nil
	}

	a := &DayOfWeekAvailability{AttendeeID: attendeeID, EventWeekdayID: weekday.ID, StartHour: hour}
	if err := s.Repo.CreateDayOfWeek(a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.Repo.FindDayOfWeek(attendeeID, weekday.ID, hour)
			if ferr != nil {
				return nil, apperror.Conflict("availability already exists")
			}
			a = winner
		} else {
			return nil, err
		}
	}
	return &ToggleResult{Created: &event.SlotEntry{
		ID:        a.ID,
		Day:       weekday.DayLabel(),
		StartHour: utils.FormatStartHour(a.StartHour),
	}}, nil
}

// ===========================
// Aggregation (read-only)

// AttendeeSlots lists one attendee's availability in insertion order.
func (s *Service) AttendeeSlots(ev *event.Event, attendeeID uint) ([]event.SlotEntry, error) {
	switch ev.EventType {
	case event.TypeSpecificDates:
		list, err := s.Repo.ListSpecificByAttendee(attendeeID)
		if err != nil {
			return nil, err
		}
		entries := make([]event.SlotEntry, 0, len(list))
		for i := range list {
			entries = append(entries, event.SlotEntry{
				ID:        list[i].ID,
				StartTime: &list[i].StartTime,
				EndTime:   &list[i].EndTime,
			})
		}
		return entries, nil
	case event.TypeDaysOfWeek:
		rows, err := s.Repo.ListDayOfWeekByAttendee(attendeeID)
		if err != nil {
			return nil, err
		}
		return dayRowsToEntries(rows), nil
	default:
		return []event.SlotEntry{}, nil
	}
}

// EventRoster lists every attendee's availability for the event, with the
// attendee name on each entry.
func (s *Service) EventRoster(ev *event.Event) ([]event.SlotEntry, error) {
	switch ev.EventType {
	case event.TypeSpecificDates:
		rows, err := s.Repo.ListSpecificByEvent(ev.ID)
		if err != nil {
			return nil, err
		}
		entries := make([]event.SlotEntry, 0, len(rows))
		for i := range rows {
			entries = append(entries, event.SlotEntry{
				ID:        rows[i].ID,
				Attendee:  rows[i].Attendee,
				StartTime: &rows[i].StartTime,
				EndTime:   &rows[i].EndTime,
			})
		}
		return entries, nil
	case event.TypeDaysOfWeek:
		rows, err := s.Repo.ListDayOfWeekByEvent(ev.ID)
		if err != nil {
			return nil, err
		}
		return dayRowsToEntries(rows), nil
	default:
		return []event.SlotEntry{}, nil
	}
}

// ResponseCount is the organizer-facing response rate: distinct attendees
// with at least one availability record, however many slots each marked.
func (s *Service) ResponseCount(ev *event.Event) (int64, error) {
	switch ev.EventType {
	case event.TypeSpecificDates:
		return s.Repo.CountDistinctSpecific(ev.ID)
	case event.TypeDaysOfWeek:
		return s.Repo.CountDistinctDayOfWeek(ev.ID)
	default:
		return 0, nil
	}
}

// AvailableAt lists the names of attendees whose availability covers the
// instant. Only meaningful for specific_dates events.
func (s *Service) AvailableAt(uniqueID string, instant time.Time) ([]string, error) {
	ev, err := s.EventSvc.GetByUniqueID(uniqueID)
	if err != nil {
		return nil, err
	}
	if ev.EventType != event.TypeSpecificDates {
		return nil, apperror.Validation("event_type", "instant queries are only supported for specific_dates events")
	}
	names, err := s.Repo.NamesAvailableAt(ev.ID, instant)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func dayRowsToEntries(rows []dayRow) []event.SlotEntry {
	entries := make([]event.SlotEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, event.SlotEntry{
			ID:        row.ID,
			Attendee:  row.Attendee,
			Day:       event.EventWeekday{Day: row.Day}.DayLabel(),
			StartHour: utils.FormatStartHour(row.StartHour),
		})
	}
	return entries
}
