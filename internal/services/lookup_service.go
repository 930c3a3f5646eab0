package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/stwalsh4118/portfolio/internal/logger"
	"github.com/stwalsh4118/portfolio/internal/models"
	"github.com/stwalsh4118/portfolio/internal/places"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// Notices shown instead of an error when the address lookup fails.
const (
	NoticeLookupUnavailable = "Failed to initialize address search. Please try again later."
	NoticeSuggestionsFailed = "Failed to fetch address suggestions. Please try typing the complete address."
	NoticeDetailsFailed     = "Failed to get address details. Please try again."
)

// PhotoPath is where the API serves property photos. Image URLs point here so the
// lookup key stays on the server.
const PhotoPath = "/api/v1/places/photos/"

// PlacesClient is the external address lookup used by LookupService.
type PlacesClient interface {
	Autocomplete(ctx context.Context, input string) ([]places.Suggestion, error)
	AddressComponents(ctx context.Context, placeID string) (places.Components, error)
	PhotoReference(ctx context.Context, p models.Point) (string, error)
	Photo(ctx context.Context, reference string) (places.Photo, error)
}

// Suggestions is the autocomplete result. Notice is set when the lookup failed and the
// user should type the address by hand.
type Suggestions struct {
	Suggestions []places.Suggestion `json:"suggestions"`
	Notice      string              `json:"notice,omitempty"`
}

// AddressDetails is a resolved suggestion ready to be applied to the add-property form.
type AddressDetails struct {
	Address  *validation.Address `json:"address,omitempty"`
	Location *models.Point       `json:"location,omitempty"`
	Notice   string              `json:"notice,omitempty"`
}

// LookupService wraps the external lookup. Failures never surface as errors: they are
// logged and degrade to empty results, a notice or the fallback image.
type LookupService interface {
	Suggestions(ctx context.Context, input string) Suggestions
	AddressDetails(ctx context.Context, placeID, mainText string) AddressDetails
	PropertyImage(ctx context.Context, at *models.Point) string
	Photo(ctx context.Context, reference string) (*places.Photo, error)
}

type lookupService struct {
	client   PlacesClient
	fallback string
	log      *logger.Logger
}

// NewLookupService creates a LookupService. fallbackImage is used whenever no photo is found.
func NewLookupService(client PlacesClient, fallbackImage string, log *logger.Logger) LookupService {
	return &lookupService{
		client:   client,
		fallback: fallbackImage,
		log:      log.Component("lookup_service"),
	}
}

func (s *lookupService) notice(err error, notice string) string {
	if errors.Is(err, places.ErrNotConfigured) {
		return NoticeLookupUnavailable
	}
	return notice
}

func (s *lookupService) Suggestions(ctx context.Context, input string) Suggestions {
	results, err := s.client.Autocomplete(ctx, input)
	if err != nil {
		s.log.Warn("Address suggestions unavailable", map[string]interface{}{
			"input": input,
			"error": err.Error(),
		})
		return Suggestions{Suggestions: []places.Suggestion{}, Notice: s.notice(err, NoticeSuggestionsFailed)}
	}
	return Suggestions{Suggestions: results}
}

func (s *lookupService) AddressDetails(ctx context.Context, placeID, mainText string) AddressDetails {
	comps, err := s.client.AddressComponents(ctx, placeID)
	if err != nil {
		s.log.Warn("Address details unavailable", map[string]interface{}{
			"place_id": placeID,
			"error":    err.Error(),
		})
		return AddressDetails{Notice: s.notice(err, NoticeDetailsFailed)}
	}

	// the address field keeps the suggestion's main text, e.g. "3806 Sweetbriar Ln"
	full := strings.TrimSpace(mainText)
	if full == "" {
		full, _, _ = strings.Cut(comps.FormattedAddress, ",")
	}

	details := AddressDetails{
		Address: &validation.Address{
			FullAddress: full,
			City:        comps.City,
			State:       comps.State,
			ZipCode:     comps.ZipCode,
		},
	}
	if !comps.Location.IsZero() {
		loc := comps.Location
		details.Location = &loc
	}
	return details
}

func (s *lookupService) PropertyImage(ctx context.Context, at *models.Point) string {
	if at == nil || at.IsZero() {
		return s.fallback
	}

	ref, err := s.client.PhotoReference(ctx, *at)
	if err != nil {
		s.log.Warn("Property photo unavailable", map[string]interface{}{
			"lat":   at.Lat,
			"lng":   at.Lng,
			"error": err.Error(),
		})
		return s.fallback
	}
	if ref == "" {
		s.log.Debug("No photo found near property", map[string]interface{}{"lat": at.Lat, "lng": at.Lng})
		return s.fallback
	}
	return PhotoPath + url.PathEscape(ref)
}

func (s *lookupService) Photo(ctx context.Context, reference string) (*places.Photo, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrPhotoNotFound)
	}

	photo, err := s.client.Photo(ctx, reference)
	if err != nil {
		s.log.Warn("Photo download failed", map[string]interface{}{
			"reference": reference,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrPhotoNotFound, err)
	}
	return &photo, nil
}
