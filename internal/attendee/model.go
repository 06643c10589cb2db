package attendee

import (
	"time"
)

// Attendee is a per-event identity. The (name, event) pair is unique: the
// same name on two different events is two unrelated attendees. The record
// doubles as the principal the session token is issued for.
type Attendee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_attendees_name_event" json:"name"`
	EventID      uint      `gorm:"not null;uniqueIndex:idx_attendees_name_event;index" json:"event_id"`
	PasswordHash string    `gorm:"type:varchar(128);not null;default:''" json:"-"`
	Timezone     string    `gorm:"type:varchar(50);not null;default:'UTC'" json:"timezone"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// HasSecret reports whether a secret was set at creation. An attendee
// created without one stays secret-less for its lifetime.
func (a *Attendee) HasSecret() bool {
	return a.PasswordHash != ""
}

// ===============================
// Sign-In Request
// ===============================

type SignInRequest struct {
	Name     string `json:"name" binding:"required"`
	Secret   string `json:"secret"`
	Timezone string `json:"timezone"`
}

// Session is the credential returned on sign-in.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
