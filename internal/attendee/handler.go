package attendee

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planmeet/meeting-scheduler-backend/apperror"
	"github.com/planmeet/meeting-scheduler-backend/internal/event"
)

type Handler struct {
	Service  *Service
	EventSvc *event.Service
}

func NewHandler(s *Service, eventSvc *event.Service) *Handler {
	return &Handler{Service: s, EventSvc: eventSvc}
}

// ===========================
// Sign In - POST /events/:unique_id/signin
//
// Resolves or creates the attendee for this event and returns a session
// token. 201 when a new attendee was created, 200 when an existing
// identity signed in again.
func (h *Handler) SignIn(c *gin.Context) {
	ev, err := h.EventSvc.GetByUniqueID(c.Param("unique_id"))
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, created, err := h.Service.SignIn(ev, &req)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	session, err := h.Service.IssueSession(a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"attendee": gin.H{
			"id":       a.ID,
			"name":     a.Name,
			"timezone": a.Timezone,
		},
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	})
}
