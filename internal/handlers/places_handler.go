package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/portfolio/internal/errors"
	"github.com/stwalsh4118/portfolio/internal/models"
	"github.com/stwalsh4118/portfolio/internal/services"
)

// PlacesHandler serves address suggestions and property photos.
// Lookup failures are reported in the body as a notice, never as an error status.
type PlacesHandler struct {
	service services.LookupService
}

// NewPlacesHandler creates a new PlacesHandler instance.
func NewPlacesHandler(service services.LookupService) *PlacesHandler {
	return &PlacesHandler{service: service}
}

// AutocompleteRequest represents the query parameters for address suggestions.
type AutocompleteRequest struct {
	Input string `form:"input" binding:"required,min=3,max=200"`
}

// DetailsRequest carries the main text of the picked suggestion, which becomes the
// street address of the form.
type DetailsRequest struct {
	MainText string `form:"mainText" binding:"max=200"`
}

// PhotoRequest represents the query parameters for the photo lookup.
type PhotoRequest struct {
	Lat float64 `form:"lat" binding:"required,latitude"`
	Lng float64 `form:"lng" binding:"required,longitude"`
}

// PhotoResponse is the resolved photo URL, either a path under /api/v1/places/photos/
// or the fallback image.
type PhotoResponse struct {
	URL string `json:"url"`
}

// Autocomplete handles GET /api/v1/places/autocomplete.
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	var req AutocompleteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.Suggestions(c.Request.Context(), req.Input))
}

// Details handles GET /api/v1/places/:placeId.
func (h *PlacesHandler) Details(c *gin.Context) {
	var req DetailsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.AddressDetails(c.Request.Context(), c.Param("placeId"), req.MainText))
}

// Photo handles GET /api/v1/places/photo.
func (h *PlacesHandler) Photo(c *gin.Context) {
	var req PhotoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	at := models.Point{Lat: req.Lat, Lng: req.Lng}
	c.JSON(http.StatusOK, PhotoResponse{URL: h.service.PropertyImage(c.Request.Context(), &at)})
}

// photoCacheAge is how long browsers may keep a proxied photo.
const photoCacheAge = 24 * 60 * 60

// PhotoContent handles GET /api/v1/places/photos/:reference by streaming the image.
func (h *PlacesHandler) PhotoContent(c *gin.Context) {
	photo, err := h.service.Photo(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondServiceError(c, err, "Failed to load photo")
		return
	}
	defer photo.Data.Close()

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, photo.Data, map[string]string{
		"Cache-Control": "public, max-age=" + strconv.Itoa(photoCacheAge),
	})
}
