// Package places talks to the Google Maps Places API for address suggestions, address
// components and property photos.
package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"github.com/stwalsh4118/portfolio/internal/config"
	"github.com/stwalsh4118/portfolio/internal/models"
)

// ErrNotConfigured is returned by every lookup when no API key is set.
var ErrNotConfigured = errors.New("places lookup is not configured")

const (
	photoMaxWidth  = 1200
	photoMaxHeight = 800

	// photoSearchRadius is in meters around the property coordinates.
	photoSearchRadius = 50
)

// mapsAPI is the subset of *maps.Client used here.
type mapsAPI interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
	PlacePhoto(ctx context.Context, r *maps.PlacePhotoRequest) (maps.PlacePhotoResponse, error)
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	PlaceID       string `json:"placeId"`
	Description   string `json:"description"`
	MainText      string `json:"mainText"`
	SecondaryText string `json:"secondaryText"`
}

// Components are the address parts the add-property form needs, plus the place location
// used to look up a photo and to place the property on the map.
type Components struct {
	FormattedAddress string       `json:"formattedAddress"`
	City             string       `json:"city"`
	State            string       `json:"state"`
	ZipCode          string       `json:"zipCode"`
	Location         models.Point `json:"location"`
}

// Photo is the image behind a photo reference. The caller closes Data.
type Photo struct {
	ContentType string
	Data        io.ReadCloser
}

// Client wraps the Places API with per-call timeouts. The API key stays inside the
// client; photos are fetched server side so it never reaches a browser.
type Client struct {
	api     mapsAPI
	country string
	timeout time.Duration
}

// NewClient creates a Client from configuration. Without an API key the client is
// returned anyway and every call fails with ErrNotConfigured.
func NewClient(cfg config.PlacesConfig) (*Client, error) {
	c := &Client{country: cfg.Country, timeout: cfg.Timeout}
	if cfg.APIKey == "" {
		return c, nil
	}

	api, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	c.api = api
	return c, nil
}

// Configured reports whether lookups can be made.
func (c *Client) Configured() bool {
	return c != nil && c.api != nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Autocomplete returns street address suggestions for input, restricted to the
// configured country. Blank input yields no suggestions without a request.
func (c *Client) Autocomplete(ctx context.Context, input string) ([]Suggestion, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(input) == "" {
		return []Suggestion{}, nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req := &maps.PlaceAutocompleteRequest{
		Input: input,
		Types: maps.AutocompletePlaceTypeAddress,
	}
	if c.country != "" {
		req.Components = map[maps.Component][]string{maps.ComponentCountry: {c.country}}
	}

	resp, err := c.api.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place autocomplete for %q: %w", input, err)
	}

	out := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, Suggestion{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return out, nil
}

// AddressComponents resolves a place to city, state, postal code and location. The state
// is the short name (e.g. "NE").
func (c *Client) AddressComponents(ctx context.Context, placeID string) (Components, error) {
	if !c.Configured() {
		return Components{}, ErrNotConfigured
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	result, err := c.api.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskAddressComponent,
			maps.PlaceDetailsFieldMaskFormattedAddress,
			maps.PlaceDetailsFieldMaskGeometryLocation,
		},
	})
	if err != nil {
		return Components{}, fmt.Errorf("place details for %s: %w", placeID, err)
	}

	out := Components{
		FormattedAddress: result.FormattedAddress,
		Location:         models.Point{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
	}
	for _, comp := range result.AddressComponents {
		switch {
		case slices.Contains(comp.Types, "locality"):
			out.City = comp.LongName
		case slices.Contains(comp.Types, "administrative_area_level_1"):
			out.State = comp.ShortName
		case slices.Contains(comp.Types, "postal_code"):
			out.ZipCode = comp.LongName
		}
	}
	return out, nil
}

// PhotoReference returns the reference of the first photo of a building at p, or ""
// when none is found.
func (c *Client) PhotoReference(ctx context.Context, p models.Point) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.api.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: p.Lat, Lng: p.Lng},
		Radius:   photoSearchRadius,
		Type:     maps.PlaceType("premise"),
	})
	if err != nil {
		return "", fmt.Errorf("nearby search at %f,%f: %w", p.Lat, p.Lng, err)
	}

	if len(resp.Results) == 0 || len(resp.Results[0].Photos) == 0 {
		return "", nil
	}
	return resp.Results[0].Photos[0].PhotoReference, nil
}

// Photo opens the image behind reference. It runs on ctx without the per-call timeout,
// which would cancel the body while it is still being streamed.
func (c *Client) Photo(ctx context.Context, reference string) (Photo, error) {
	if !c.Configured() {
		return Photo{}, ErrNotConfigured
	}

	resp, err := c.api.PlacePhoto(ctx, &maps.PlacePhotoRequest{
		PhotoReference: reference,
		MaxWidth:       photoMaxWidth,
		MaxHeight:      photoMaxHeight,
	})
	if err != nil {
		return Photo{}, fmt.Errorf("place photo %s: %w", reference, err)
	}
	return Photo{ContentType: resp.ContentType, Data: resp.Data}, nil
}
