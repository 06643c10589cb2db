package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/planmeet/meeting-scheduler-backend/config"
	"github.com/planmeet/meeting-scheduler-backend/internal/attendee"
)

// AttendeeAuth validates the Bearer session token and loads the attendee
// it was issued for. Handlers read attendee_id / attendee_name /
// attendee_event_id from the context.
func AttendeeAuth(cfg *config.Config, attendeeSvc *attendee.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := resolveAttendee(c, cfg, attendeeSvc)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing session token"})
			return
		}
		setAttendeeContext(c, a)
		c.Next()
	}
}

// OptionalAttendeeAuth loads the attendee when a valid token is present
// and passes through unauthenticated otherwise. Used on the public event
// detail route, which adds the caller's own availability when signed in.
func OptionalAttendeeAuth(cfg *config.Config, attendeeSvc *attendee.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if a, ok := resolveAttendee(c, cfg, attendeeSvc); ok {
			setAttendeeContext(c, a)
		}
		c.Next()
	}
}

func resolveAttendee(c *gin.Context, cfg *config.Config, attendeeSvc *attendee.Service) (*attendee.Attendee, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	attendeeIDFloat, ok := claims["attendee_id"].(float64)
	if !ok {
		return nil, false
	}

	a, err := attendeeSvc.GetByID(uint(attendeeIDFloat))
	if err != nil {
		return nil, false
	}
	return a, true
}

func setAttendeeContext(c *gin.Context, a *attendee.Attendee) {
	c.Set("attendee_id", a.ID)
	c.Set("attendee_name", a.Name)
	c.Set("attendee_event_id", a.EventID)
}
