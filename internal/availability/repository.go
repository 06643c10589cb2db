package availability

import (
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// dayRow is a scan target for joined day-of-week availability queries.
type dayRow struct {
	ID        uint
	Attendee  string
	Day       int
	StartHour int
}

// specificRow is a scan target for joined specific-date availability queries.
type specificRow struct {
	ID        uint
	Attendee  string
	StartTime time.Time
	EndTime   time.Time
}

// ===========================
// Specific-date records

func (r *Repository) CreateSpecific(a *SpecificDateAvailability) error {
	return r.DB.Create(a).Error
}

func (r *Repository) DeleteSpecific(id uint) error {
	return r.DB.Delete(&SpecificDateAvailability{}, id).Error
}

// Lookup by the (attendee, start_time) uniqueness key. The end time is not
// part of the key, so a different end still matches.
func (r *Repository) FindSpecific(attendeeID uint, start time.Time) (*SpecificDateAvailability, error) {
	var a SpecificDateAvailability
	err := r.DB.
		Where("attendee_id = ? AND start_time = ?", attendeeID, start).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListSpecificByAttendee(attendeeID uint) ([]SpecificDateAvailability, error) {
	var list []SpecificDateAvailability
	err := r.DB.
		Where("attendee_id = ?", attendeeID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *Repository) ListSpecificByEvent(eventID uint) ([]specificRow, error) {
	var rows []specificRow
	err := r.DB.
		Table("specific_date_availabilities").
		Select("specific_date_availabilities.id, attendees.name AS attendee, specific_date_availabilities.start_time, specific_date_availabilities.end_time").
		Joins("JOIN attendees ON attendees.id = specific_date_availabilities.attendee_id").
		Where("attendees.event_id = ?", eventID).
		Order("specific_date_availabilities.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) CountDistinctSpecific(eventID uint) (int64, error) {
	var count int64
	err := r.DB.
		Table("specific_date_availabilities").
		Joins("JOIN attendees ON attendees.id = specific_date_availabilities.attendee_id").
		Where("attendees.event_id = ?", eventID).
		Distinct("specific_date_availabilities.attendee_id").
		Count(&count).Error
	return count, err
}

// Names of attendees whose stored range covers the instant.
func (r *Repository) NamesAvailableAt(eventID uint, instant time.Time) ([]string, error) {
	var names []string
	err := r.DB.
		Table("specific_date_availabilities").
		Joins("JOIN attendees ON attendees.id = specific_date_availabilities.attendee_id").
		Where("attendees.event_id = ? AND specific_date_availabilities.start_time <= ? AND specific_date_availabilities.end_time > ?", eventID, instant, instant).
		Distinct().
		Order("attendees.name ASC").
		Pluck("attendees.name", &names).Error
	return names, err
}

// ===========================
// Day-of-week records

func (r *Repository) CreateDayOfWeek(a *DayOfWeekAvailability) error {
	return r.DB.Create(a).Error
}

func (r *Repository) DeleteDayOfWeek(id uint) error {
	return r.DB.Delete(&DayOfWeekAvailability{}, id).Error
}

func (r *Repository) FindDayOfWeek(attendeeID, weekdayID uint, startHour int) (*DayOfWeekAvailability, error) {
	var a DayOfWeekAvailability
	err := r.DB.
		Where("attendee_id = ? AND event_weekday_id = ? AND start_hour = ?", attendeeID, weekdayID, startHour).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) ListDayOfWeekByAttendee(attendeeID uint) ([]dayRow, error) {
	var rows []dayRow
	err := r.DB.
		Table("day_of_week_availabilities").
		Select("day_of_week_availabilities.id, event_weekdays.day, day_of_week_availabilities.start_hour").
		Joins("JOIN event_weekdays ON event_weekdays.id = day_of_week_availabilities.event_weekday_id").
		Where("day_of_week_availabilities.attendee_id = ?", attendeeID).
		Order("day_of_week_availabilities.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) ListDayOfWeekByEvent(eventID uint) ([]dayRow, error) {
	var rows []dayRow
	err := r.DB.
		Table("day_of_week_availabilities").
		Select("day_of_week_availabilities.id, attendees.name AS attendee, event_weekdays.day, day_of_week_availabilities.start_hour").
		Joins("JOIN event_weekdays ON event_weekdays.id = day_of_week_availabilities.event_weekday_id").
		Joins("JOIN attendees ON attendees.id = day_of_week_availabilities.attendee_id").
		Where("attendees.event_id = ?", eventID).
		Order("day_of_week_availabilities.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) CountDistinctDayOfWeek(eventID uint) (int64, error) {
	var count int64
	err := r.DB.
		Table("day_of_week_availabilities").
		Joins("JOIN attendees ON attendees.id = day_of_week_availabilities.attendee_id").
		Where("attendees.event_id = ?", eventID).
		Distinct("day_of_week_availabilities.attendee_id").
		Count(&count).Error
	return count, err
}
