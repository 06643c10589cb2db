package availability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planmeet/meeting-scheduler-backend/apperror"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// Toggle Availability - POST /events/:unique_id/availability
//
// Authenticated. 201 with the created slot descriptor, or 200 with
// {"removed": true} when the matching record was deleted.
func (h *Handler) Toggle(c *gin.Context) {
	attendeeID, ok := c.Get("attendee_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "attendee context missing"})
		return
	}
	attendeeEventID, ok := c.Get("attendee_event_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "attendee context missing"})
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Service.Toggle(c.Param("unique_id"), attendeeID.(uint), attendeeEventID.(uint), &req)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if result.Created != nil {
		c.JSON(http.StatusCreated, gin.H{"created": result.Created})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// ===========================
// Availability At Instant - GET /events/:unique_id/availability/at
//
// Lists attendee names whose availability covers the given RFC 3339
// instant. Specific-dates events only.
func (h *Handler) AvailableAt(c *gin.Context) {
	raw := c.Query("instant")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instant query parameter is required"})
		return
	}
	instant, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instant. Use RFC 3339"})
		return
	}

	names, err := h.Service.AvailableAt(c.Param("unique_id"), instant)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendees": names})
}
