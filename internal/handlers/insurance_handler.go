package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/portfolio/internal/errors"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// Insurance handles GET /api/v1/properties/:id/insurance.
func (h *PropertyHandler) Insurance(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	view, err := h.service.Insurance(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load insurance")
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateInsurance handles PUT /api/v1/properties/:id/insurance.
func (h *PropertyHandler) UpdateInsurance(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	var form validation.InsuranceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BindError(c, err)
		return
	}

	view, err := h.service.UpdateInsurance(c.Request.Context(), id, form)
	if err != nil {
		respondServiceError(c, err, "Failed to update insurance")
		return
	}

	c.JSON(http.StatusOK, view)
}

// RequestRoofAssessment handles POST /api/v1/properties/:id/roof-assessments.
func (h *PropertyHandler) RequestRoofAssessment(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	var form validation.RoofAssessmentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BindError(c, err)
		return
	}

	req, err := h.service.RequestRoofAssessment(c.Request.Context(), id, form)
	if err != nil {
		respondServiceError(c, err, "Failed to request roof assessment")
		return
	}

	c.JSON(http.StatusCreated, req)
}
