package attendee

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create a new attendee. The composite unique index on (name, event_id) is
// the authority against concurrent duplicate sign-ins.
func (r *Repository) Create(a *Attendee) error {
	return r.DB.Create(a).Error
}

// Find attendee by its event and name
func (r *Repository) FindByEventAndName(eventID uint, name string) (*Attendee, error) {
	var a Attendee
	err := r.DB.
		Where("event_id = ? AND name = ?", eventID, name).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Find attendee by ID
func (r *Repository) FindByID(id uint) (*Attendee, error) {
	var a Attendee
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
