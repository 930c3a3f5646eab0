package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/stwalsh4118/portfolio/internal/errors"
	"github.com/stwalsh4118/portfolio/internal/timeline"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// DocumentsResponse is the document timeline of a property.
type DocumentsResponse struct {
	Documents []timeline.Entry `json:"documents"`
	Count     int              `json:"count"`
}

// Documents handles GET /api/v1/properties/:id/documents.
func (h *PropertyHandler) Documents(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	docs, err := h.service.Documents(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load documents")
		return
	}

	c.JSON(http.StatusOK, DocumentsResponse{Documents: docs, Count: len(docs)})
}

// UploadDocument handles POST /api/v1/properties/:id/documents.
// Only the file metadata is sent; file contents are not stored.
func (h *PropertyHandler) UploadDocument(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	var form validation.DocumentUploadForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BindError(c, err)
		return
	}

	entry, err := h.service.UploadDocument(c.Request.Context(), id, form)
	if err != nil {
		respondServiceError(c, err, "Failed to upload document")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateDocument handles PATCH /api/v1/properties/:id/documents/:documentId.
func (h *PropertyHandler) UpdateDocument(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}
	var form validation.DocumentEditForm
	if err := c.ShouldBindJSON(&form); err != nil {
		apierrors.BindError(c, err)
		return
	}

	entry, err := h.service.UpdateDocument(c.Request.Context(), id, c.Param("documentId"), form)
	if err != nil {
		respondServiceError(c, err, "Failed to update document")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteDocument handles DELETE /api/v1/properties/:id/documents/:documentId.
func (h *PropertyHandler) DeleteDocument(c *gin.Context) {
	id, ok := propertyID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDocument(c.Request.Context(), id, c.Param("documentId")); err != nil {
		respondServiceError(c, err, "Failed to delete document")
		return
	}

	c.Status(http.StatusNoContent)
}
