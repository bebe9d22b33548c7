package capture

import (
	"errors"

	"github.com/clippy-app/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// CaptureDTO is the subscribe request body.
type CaptureDTO struct {
	Email string `json:"email"`
}

// Handler exposes the capture workflow over HTTP. Each request is one
// page-visit session: expand, enter the address, submit.
type Handler struct {
	wf *Workflow
}

func NewHandler(wf *Workflow) *Handler {
	return &Handler{wf: wf}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/capture")
	g.POST("/subscribe", h.subscribe)
}

func (h *Handler) subscribe(c *gin.Context) {
	var dto CaptureDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session := NewSession()
	session.Expand()
	session.SetEmail(dto.Email)

	err := h.wf.Submit(c.Request.Context(), session)
	if err == nil {
		response.Created(c, gin.H{
			"email":   session.Email(),
			"phase":   session.Phase().String(),
			"message": "Welcome email sent! Check your inbox for special rewards.",
		})
		return
	}

	var vErr *ValidationError
	var appErr *ApplicationError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(c, vErr.Reason)
	case errors.As(err, &appErr):
		msg := appErr.Message
		if msg == "" {
			msg = "Failed to submit email. Please try again."
		}
		response.UnprocessableEntity(c, msg)
	case errors.Is(err, ErrConnection), errors.Is(err, ErrProtocol):
		response.BadGateway(c, "Unable to connect to server. Please try again later.")
	default:
		response.InternalError(c, err)
	}
}
