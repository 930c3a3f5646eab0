package services

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/stwalsh4118/portfolio/internal/models"
	"github.com/stwalsh4118/portfolio/internal/timeline"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// Upload limits of the document dropzone.
const (
	MaxDocumentBytes = 10 << 20

	msgFileTooLarge    = "File must be 10MB or smaller"
	msgUnsupportedFile = "Supported file types: PDF, JPG, PNG"
	msgInvalidDate     = validation.MsgInvalidDate
)

// AcceptedDocumentTypes are the MIME types the dropzone accepts.
var AcceptedDocumentTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// FormatSize renders a byte count the way document cards show it ("245 KB").
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%d KB", int64(math.Round(float64(bytes)/1024)))
}

// parseDocumentDates parses dates that already passed the form rules. A start date that is
// present but unparseable is only caught here, since the end date rule skips it.
func parseDocumentDates(start, end string, fields map[string]string) (models.Date, models.Date) {
	startDate, err := models.ParseDate(start)
	if err != nil {
		fields[string(validation.FieldStartDate)] = msgInvalidDate
	}
	endDate, err := models.ParseDate(end)
	if err != nil {
		fields[string(validation.FieldEndDate)] = msgInvalidDate
	}
	return startDate, endDate
}

func (s *propertyService) Documents(ctx context.Context, id int64) ([]timeline.Entry, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return timeline.Build(p.Documents, s.now()), nil
}

func (s *propertyService) UploadDocument(ctx context.Context, id int64, form validation.DocumentUploadForm) (*timeline.Entry, error) {
	now := s.now()

	fields := validation.Validate[validation.DocumentField](form, now).Strings()
	if form.File != nil && form.File.Name != "" {
		switch {
		case form.File.SizeBytes > MaxDocumentBytes:
			fields[string(validation.FieldFile)] = msgFileTooLarge
		case !slices.Contains(AcceptedDocumentTypes, form.File.MimeType):
			fields[string(validation.FieldFile)] = msgUnsupportedFile
		}
	}
	if len(fields) > 0 {
		s.log.Warn("Rejected document upload", map[string]interface{}{"property_id": id, "fields": fields})
		return nil, newValidationError(fields)
	}
	start, end := parseDocumentDates(form.StartDate, form.EndDate, fields)
	if err := newValidationError(fields); err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(form.Name),
		Type:       form.File.MimeType,
		Size:       FormatSize(form.File.SizeBytes),
		UploadedAt: now.UTC(),
		StartDate:  start,
		EndDate:    end,
		Category:   models.DocumentCategory(form.Category),
		Notes:      form.Notes,
	}
	_, err := s.update(ctx, id, "store document", func(p *models.Property) error {
		p.Documents = append(p.Documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Document uploaded", map[string]interface{}{
		"property_id": id,
		"document_id": doc.ID,
		"category":    doc.Category,
	})
	return &timeline.Entry{Document: doc, Expiration: timeline.ExpirationStatus(doc.EndDate, now)}, nil
}

func (s *propertyService) UpdateDocument(ctx context.Context, id int64, documentID string, form validation.DocumentEditForm) (*timeline.Entry, error) {
	now := s.now()

	fields := validation.Validate[validation.DocumentField](form, now).Strings()
	if len(fields) > 0 {
		s.log.Warn("Rejected document edit", map[string]interface{}{"property_id": id, "document_id": documentID, "fields": fields})
		return nil, newValidationError(fields)
	}
	start, end := parseDocumentDates(form.StartDate, form.EndDate, fields)
	if err := newValidationError(fields); err != nil {
		return nil, err
	}

	var doc models.Document
	_, err := s.update(ctx, id, "update document "+documentID, func(p *models.Property) error {
		i := p.FindDocument(documentID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
		}
		d := &p.Documents[i]
		d.Name = strings.TrimSpace(form.Name)
		d.StartDate = start
		d.EndDate = end
		d.Notes = form.Notes
		doc = *d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Document updated", map[string]interface{}{"property_id": id, "document_id": documentID})
	return &timeline.Entry{Document: doc, Expiration: timeline.ExpirationStatus(doc.EndDate, now)}, nil
}

func (s *propertyService) DeleteDocument(ctx context.Context, id int64, documentID string) error {
	_, err := s.update(ctx, id, "delete document "+documentID, func(p *models.Property) error {
		i := p.FindDocument(documentID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
		}
		p.Documents = slices.Delete(p.Documents, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Document deleted", map[string]interface{}{"property_id": id, "document_id": documentID})
	return nil
}
