package event

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planmeet/meeting-scheduler-backend/apperror"
	"github.com/planmeet/meeting-scheduler-backend/utils"
)

type Handler struct {
	Service *Service
	Roster  RosterSource
}

func NewHandler(s *Service, roster RosterSource) *Handler {
	return &Handler{Service: s, Roster: roster}
}

// ===========================
// Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.Service.CreateEvent(&req)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"event":      e,
		"event_link": h.Service.PublicLink(e),
	})
}

// ===========================
// Event Options - GET /events/options
//
// Static enumeration used by the event creation form: the two event
// shapes, the selectable hour labels, and the timezone names.
func (h *Handler) GetOptions(c *gin.Context) {
	labels := utils.HourLabels()
	c.JSON(http.StatusOK, gin.H{
		"date_options": []string{TypeSpecificDates, TypeDaysOfWeek},
		"time_options": gin.H{
			"no_earlier_than": labels,
			"no_later_than":   labels,
		},
		"time_zones": utils.TimeZones,
	})
}

// ===========================
// Event Detail - GET /events/:unique_id
//
// Returns the event, the full roster aggregation, the response-rate count,
// and — when the request carries a valid session for an attendee of this
// event — that attendee's own availability.
func (h *Handler) GetEventByLink(c *gin.Context) {
	e, err := h.Service.GetByUniqueID(c.Param("unique_id"))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	roster, err := h.Roster.EventRoster(e)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availabilities"})
		return
	}
	count, err := h.Roster.ResponseCount(e)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count responses"})
		return
	}

	resp := gin.H{
		"event":                   e,
		"event_link":              h.Service.PublicLink(e),
		"attendee_availabilities": roster,
		"availability_count":      count,
	}

	// Own availability only when the session belongs to this event.
	if attendeeID, ok := c.Get("attendee_id"); ok {
		if eventID, ok := c.Get("attendee_event_id"); ok && eventID.(uint) == e.ID {
			own, err := h.Roster.AttendeeSlots(e, attendeeID.(uint))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availabilities"})
				return
			}
			resp["my_availabilities"] = own
		}
	}

	c.JSON(http.StatusOK, resp)
}
