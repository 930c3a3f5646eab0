package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/portfolio/internal/errors"
	"github.com/stwalsh4118/portfolio/internal/services"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// FormHandler runs form events for the dashboard modals.
type FormHandler struct {
	service services.FormService
}

// NewFormHandler creates a new FormHandler instance.
func NewFormHandler(service services.FormService) *FormHandler {
	return &FormHandler{service: service}
}

// FormEventRequest carries the form values, the state returned by the previous event
// and the event to apply. A missing state starts the form untouched.
type FormEventRequest struct {
	Values json.RawMessage    `json:"values"`
	State  json.RawMessage    `json:"state"`
	Event  services.FormEvent `json:"event"`
}

// Event handles POST /api/v1/forms/:form/events.
func (h *FormHandler) Event(c *gin.Context) {
	var req FormEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	result, err := h.service.Apply(services.FormRequest{
		Kind:   validation.Kind(c.Param("form")),
		Values: req.Values,
		State:  req.State,
		Event:  req.Event,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to apply form event")
		return
	}

	c.JSON(http.StatusOK, result)
}
