package attendee

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/planmeet/meeting-scheduler-backend/apperror"
	"github.com/planmeet/meeting-scheduler-backend/config"
	"github.com/planmeet/meeting-scheduler-backend/internal/event"
	"github.com/planmeet/meeting-scheduler-backend/utils"
)

// Service resolves per-event attendee identities and issues session tokens.
type Service struct {
	Repo      *Repository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewService(r *Repository, cfg *config.Config) *Service {
	return &Service{
		Repo:      r,
		jwtSecret: cfg.JWTSecret,
		jwtTTL:    time.Duration(cfg.JWTAccessTTLHrs) * time.Hour,
	}
}

// ===========================
// Sign In
//
// The sole attendee-creation path. An existing (event, name) identity is
// resolved: if it has a secret on file the supplied secret must verify;
// if it has none, any supplied secret is ignored. A missing identity is
// created; setting a secret then is optional and permanent either way.
func (s *Service) SignIn(ev *event.Event, req *SignInRequest) (*Attendee, bool, error) {
	existing, err := s.Repo.FindByEventAndName(ev.ID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if err := s.verifySecret(existing, req.Secret); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	tz := req.Timezone
	if tz == "" {
		tz = ev.Timezone
	}
	if !utils.IsValidTimeZone(tz) {
		return nil, false, apperror.Validation("timezone", fmt.Sprintf("'%s' is not a valid time zone", tz))
	}

	a := &Attendee{
		Name:     req.Name,
		EventID:  ev.ID,
		Timezone: tz,
	}
	if req.Secret != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, err
		}
		a.PasswordHash = string(hash)
	}

	if err := s.Repo.Create(a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent sign-in race; resolve the winner instead.
			winner, ferr := s.Repo.FindByEventAndName(ev.ID, req.Name)
			if ferr != nil {
				return nil, false, ferr
			}
			if verr := s.verifySecret(winner, req.Secret); verr != nil {
				return nil, false, verr
			}
			return winner, false, nil
		}
		return nil, false, err
	}
	return a, true, nil
}

func (s *Service) verifySecret(a *Attendee, secret string) error {
	if !a.HasSecret() {
		return nil
	}
	if secret == "" {
		return apperror.Unauthorized("secret required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(secret)); err != nil {
		return apperror.Unauthorized("incorrect secret")
	}
	return nil
}

// ===========================
// Session issuance
//
// Claims carry the attendee's durable id and display name, matching what
// the detail endpoints need to resolve the caller.
func (s *Service) IssueSession(a *Attendee) (*Session, error) {
	expiresAt := time.Now().Add(s.jwtTTL)
	claims := jwt.MapClaims{
		"attendee_id": a.ID,
		"name":        a.Name,
		"exp":         expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &Session{Token: signed, ExpiresAt: expiresAt}, nil
}

// GetByID loads the attendee a validated token refers to.
func (s *Service) GetByID(id uint) (*Attendee, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("attendee not found")
		}
		return nil, err
	}
	return a, nil
}
