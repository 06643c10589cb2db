package event

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// Create Event with its dates/weekdays in one transaction
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// Find Event by its public unique id
func (r *Repository) FindByUniqueID(uniqueID string) (*Event, error) {
	var e Event
	err := r.DB.
		Preload("Dates").
		Preload("DaysOfWeek").
		Where("unique_id = ?", uniqueID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// Resolve the EventWeekday row of an event for a given weekday value
func (r *Repository) FindWeekday(eventID uint, day int) (*EventWeekday, error) {
	var w EventWeekday
	err := r.DB.
		Where("event_id = ? AND day = ?", eventID, day).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}
