package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/portfolio/internal/errors"
	"github.com/stwalsh4118/portfolio/internal/services"
)

// respondServiceError maps a service error to the API error envelope. message is used
// for unexpected failures only.
func respondServiceError(c *gin.Context, err error, message string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.FieldValidation(c, validationErr.Fields)
	case errors.Is(err, services.ErrPropertyNotFound):
		apierrors.NotFound(c, "Property not found")
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, "Document not found")
	case errors.Is(err, services.ErrPhotoNotFound):
		apierrors.NotFound(c, "Photo not found")
	case errors.Is(err, services.ErrInvalidForm):
		apierrors.NotFound(c, "Form not found")
	case errors.Is(err, services.ErrInvalidAction):
		apierrors.BadRequest(c, err.Error(), nil)
	default:
		apierrors.InternalServerError(c, message, err)
	}
}

// propertyID parses the :id path parameter. On failure the response is already written.
func propertyID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "Invalid property id", map[string]interface{}{"id": raw})
		return 0, false
	}
	return id, true
}
