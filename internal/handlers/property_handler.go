package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/portfolio/internal/errors"
	"github.com/stwalsh4118/portfolio/internal/middleware"
	"github.com/stwalsh4118/portfolio/internal/models"
	"github.com/stwalsh4118/portfolio/internal/portfolio"
	"github.com/stwalsh4118/portfolio/internal/services"
	"github.com/stwalsh4118/portfolio/internal/table"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// PropertyHandler handles property, document, insurance and roof assessment requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

// ListRequest represents the query parameters of the property table.
type ListRequest struct {
	Tab       string `form:"tab" binding:"omitempty,oneof=all house apartment"`
	Search    string `form:"search"`
	Sort      string `form:"sort" binding:"omitempty,oneof=id address location units occupancy acquisitionPrice marketValue loanBalance equity type insuranceExpiresIn lastRoofingAssessment"`
	Direction string `form:"direction" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" binding:"gte=0"`
	PageSize  int    `form:"pageSize" binding:"omitempty,oneof=5 10 15 20"`
}

// ViewRequest is a table action applied to the state returned by the previous render.
type ViewRequest struct {
	State  table.State         `json:"state"`
	Action services.ViewAction `json:"action"`
}

// CreatePropertyRequest is the add-property form. Coordinates come from a picked
// address suggestion and are optional.
type CreatePropertyRequest struct {
	validation.AddPropertyForm
	Coordinates *models.Point `json:"coordinates"`
}

// NearbyRequest represents the query parameters for the nearby endpoint.
type NearbyRequest struct {
	Radius float64 `form:"radius" binding:"omitempty,gt=0,lte=3000"`
}

// NearbyResponse represents the response for the nearby endpoint.
type NearbyResponse struct {
	Properties  []portfolio.Neighbor `json:"properties"`
	Count       int                  `json:"count"`
	RadiusMiles float64              `json:"radiusMiles"`
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), services.ListQuery{
		Tab:       table.Tab(req.Tab),
		Search:    req.Search,
		SortKey:   table.SortKey(req.Sort),
		Direction: table.Direction(req.Direction),
		PageIndex: req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to list properties")
		return
	}

	c.JSON(http.StatusOK, page)
}

// View handles POST /api/v1/properties/view.
// The client posts the state it was given together with one table action and
// receives the next state and page.
func (h *PropertyHandler) View(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	page, err := h.service.View(c.Request.Context(), req.State, req.Action)
	if err != nil {
		respondServiceError(c, err, "Failed to render property table")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Summary handles GET /api/v1/properties/summary.
func (h *PropertyHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to summarize portfolio")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	property, err := h.service.Create(c.Request.Context(), services.CreatePropertyRequest{
		Form:        req.AddPropertyForm,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to add property")
		return
	}

	c.JSON(http.StatusCreated, property)
}

// Get handles GET /api/v1/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load property")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Delete handles DELETE /api/v1/properties/:id.
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete property")
		return
	}

	c.Status(http.StatusNoContent)
}

// Nearby handles GET /api/v1/properties/:id/nearby.
func (h *PropertyHandler) Nearby(c *gin.Context) {
	log := middleware.GetLogger(c)

	id, ok := propertyID(c)
	if !ok {
		return
	}
	var req NearbyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}
	if req.Radius == 0 {
		req.Radius = portfolio.DefaultNearbyRadiusMiles
	}

	if log != nil {
		log.Info("Processing nearby request", map[string]interface{}{
			"property_id":  id,
			"radius_miles": req.Radius,
		})
	}

	neighbors, err := h.service.Nearby(c.Request.Context(), id, req.Radius)
	if err != nil {
		respondServiceError(c, err, "Failed to find nearby properties")
		return
	}

	c.JSON(http.StatusOK, NearbyResponse{
		Properties:  neighbors,
		Count:       len(neighbors),
		RadiusMiles: req.Radius,
	})
}
