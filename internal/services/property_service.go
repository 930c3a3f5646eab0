package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stwalsh4118/portfolio/internal/logger"
	"github.com/stwalsh4118/portfolio/internal/models"
	"github.com/stwalsh4118/portfolio/internal/portfolio"
	"github.com/stwalsh4118/portfolio/internal/repository"
	"github.com/stwalsh4118/portfolio/internal/table"
	"github.com/stwalsh4118/portfolio/internal/timeline"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// Defaults for properties created from the add-property form. The form does not ask for
// financials, so new properties start empty until they are edited.
const (
	NewPropertyUnits     = 1
	NewPropertyOccupancy = "0%"
)

// PropertyService defines the business operations behind the dashboard.
type PropertyService interface {
	// List renders one table page for the given query.
	List(ctx context.Context, q ListQuery) (*TablePage, error)

	// View applies a table action to a posted view state and renders the resulting page.
	// Returns a *ValidationError for a page size outside table.PageSizes.
	View(ctx context.Context, state table.State, action ViewAction) (*TablePage, error)

	// Summary aggregates the whole portfolio.
	Summary(ctx context.Context) (portfolio.Summary, error)

	// Get returns the detail page of a property.
	// Returns ErrPropertyNotFound if the property does not exist.
	Get(ctx context.Context, id int64) (*PropertyDetail, error)

	// Create validates the add-property form and stores the new property.
	// Returns a *ValidationError listing every invalid field.
	Create(ctx context.Context, req CreatePropertyRequest) (*models.Property, error)

	// Delete removes a property. Returns ErrPropertyNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error

	// Nearby lists properties within radiusMiles of the given one, closest first.
	// A radius of zero uses portfolio.DefaultNearbyRadiusMiles.
	Nearby(ctx context.Context, id int64, radiusMiles float64) ([]portfolio.Neighbor, error)

	// Documents returns the timeline of a property.
	Documents(ctx context.Context, id int64) ([]timeline.Entry, error)

	// UploadDocument validates the upload form and attaches the document metadata.
	UploadDocument(ctx context.Context, id int64, form validation.DocumentUploadForm) (*timeline.Entry, error)

	// UpdateDocument validates the edit form and updates title, dates and notes.
	UpdateDocument(ctx context.Context, id int64, documentID string, form validation.DocumentEditForm) (*timeline.Entry, error)

	// DeleteDocument removes one document. Returns ErrDocumentNotFound if it does not exist.
	DeleteDocument(ctx context.Context, id int64, documentID string) error

	// Insurance returns the insurance tab of a property.
	Insurance(ctx context.Context, id int64) (*InsuranceView, error)

	// UpdateInsurance validates and stores the insurance policy.
	UpdateInsurance(ctx context.Context, id int64, form validation.InsuranceForm) (*InsuranceView, error)

	// RequestRoofAssessment validates a roof assessment request for a property.
	RequestRoofAssessment(ctx context.Context, id int64, form validation.RoofAssessmentForm) (*RoofAssessment, error)
}

// ListQuery is the table view requested through query parameters.
type ListQuery struct {
	Tab       table.Tab
	Search    string
	SortKey   table.SortKey
	Direction table.Direction
	PageIndex int
	PageSize  int
}

// ViewAction is one interaction with the table controls.
type ViewAction struct {
	Type      string        `json:"type"`
	SortKey   table.SortKey `json:"sortKey,omitempty"`
	Tab       table.Tab     `json:"tab,omitempty"`
	Search    string        `json:"search"`
	PageSize  int           `json:"pageSize,omitempty"`
	PageIndex int           `json:"pageIndex"`
}

// View action types.
const (
	ActionRefresh      = "refresh"
	ActionToggleSort   = "toggle_sort"
	ActionSetTab       = "set_tab"
	ActionSetSearch    = "set_search"
	ActionSetPageSize  = "set_page_size"
	ActionSetPageIndex = "set_page_index"
	ActionNextPage     = "next_page"
	ActionPreviousPage = "previous_page"
)

// PropertyRow is a table row: the property plus the computed columns.
type PropertyRow struct {
	*models.Property
	Owner            string          `json:"owner"`
	InsuranceStatus  timeline.Status `json:"insuranceStatus,omitempty"`
	InsuranceMessage string          `json:"insuranceMessage"`
}

// TablePage is a rendered table page together with the state that produced it.
type TablePage struct {
	State     table.State   `json:"state"`
	Rows      []PropertyRow `json:"rows"`
	Total     int           `json:"total"`
	PageIndex int           `json:"pageIndex"`
	PageSize  int           `json:"pageSize"`
	PageCount int           `json:"pageCount"`
	StartItem int           `json:"startItem"`
	EndItem   int           `json:"endItem"`
	CanPrev   bool          `json:"canPreviousPage"`
	CanNext   bool          `json:"canNextPage"`
}

// PropertyDetail is everything the property page shows.
type PropertyDetail struct {
	Property           *models.Property `json:"property"`
	Owner              string           `json:"owner"`
	Stats              portfolio.Stats  `json:"stats"`
	Documents          []timeline.Entry `json:"documents"`
	InsuranceDocuments []timeline.Entry `json:"insuranceDocuments"`
	Insurance          *InsuranceView   `json:"insurance"`
}

// CreatePropertyRequest is the add-property form plus the location of the picked address,
// when one was picked from the suggestions.
type CreatePropertyRequest struct {
	Form        validation.AddPropertyForm
	Coordinates *models.Point
}

// ImageSource resolves a photo for new properties.
type ImageSource interface {
	PropertyImage(ctx context.Context, at *models.Point) string
}

// propertyService is the concrete implementation of PropertyService.
type propertyService struct {
	repo     repository.PropertyRepository
	images   ImageSource
	log      *logger.Logger
	pageSize int
	now      func() time.Time
}

// NewPropertyService creates a new instance of PropertyService. defaultPageSize is used
// when a query does not name one.
func NewPropertyService(repo repository.PropertyRepository, images ImageSource, defaultPageSize int, log *logger.Logger) PropertyService {
	return newPropertyService(repo, images, defaultPageSize, log, time.Now)
}

func newPropertyService(repo repository.PropertyRepository, images ImageSource, defaultPageSize int, log *logger.Logger, now func() time.Time) *propertyService {
	if !table.ValidPageSize(defaultPageSize) {
		defaultPageSize = table.DefaultPageSize
	}
	return &propertyService{
		repo:     repo,
		images:   images,
		log:      log.Component("property_service"),
		pageSize: defaultPageSize,
		now:      now,
	}
}

func (s *propertyService) listAll(ctx context.Context) ([]*models.Property, error) {
	props, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list properties", err, nil)
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return props, nil
}

// load fetches a property and maps a missing one to ErrPropertyNotFound.
func (s *propertyService) load(ctx context.Context, id int64) (*models.Property, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		s.log.Error("Failed to load property", err, map[string]interface{}{"property_id": id})
		return nil, fmt.Errorf("failed to load property %d: %w", id, err)
	}
	if p == nil {
		s.log.Debug("Property not found", map[string]interface{}{"property_id": id})
		return nil, fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
	}
	return p, nil
}

// update applies fn to the stored property inside the repository, so concurrent edits
// of one property are applied one after the other. change names the edit in errors.
func (s *propertyService) update(ctx context.Context, id int64, change string, fn repository.UpdateFunc) (*models.Property, error) {
	p, err := s.repo.Update(ctx, id, fn)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
	case errors.Is(err, ErrDocumentNotFound):
		return nil, err
	}
	s.log.Error("Failed to update property", err, map[string]interface{}{"property_id": id, "change": change})
	return nil, fmt.Errorf("failed to %s for property %d: %w", change, id, err)
}

func (s *propertyService) List(ctx context.Context, q ListQuery) (*TablePage, error) {
	state := table.NewState(s.pageSize)
	if q.Tab != "" {
		state.SetTab(q.Tab)
	}
	state.SetSearch(q.Search)
	if q.SortKey != "" {
		state.SortKey = q.SortKey
		state.Direction = table.Asc
		if q.Direction == table.Desc {
			state.Direction = table.Desc
		}
	}
	if q.PageSize != 0 {
		if err := state.SetPageSize(q.PageSize); err != nil {
			return nil, newValidationError(map[string]string{"pageSize": err.Error()})
		}
	}
	state.SetPageIndex(q.PageIndex)

	return s.render(ctx, state)
}

func (s *propertyService) View(ctx context.Context, state table.State, action ViewAction) (*TablePage, error) {
	if !table.ValidPageSize(state.PageSize) {
		state.PageSize = s.pageSize
	}
	if state.Direction == "" {
		state.Direction = table.Asc
	}

	switch action.Type {
	case ActionRefresh, "":
	case ActionToggleSort:
		if !action.SortKey.Valid() {
			return nil, newValidationError(map[string]string{"sortKey": fmt.Sprintf("unknown sort key %q", action.SortKey)})
		}
		state.ToggleSort(action.SortKey)
	case ActionSetTab:
		if !action.Tab.Valid() {
			return nil, newValidationError(map[string]string{"tab": fmt.Sprintf("unknown tab %q", action.Tab)})
		}
		state.SetTab(action.Tab)
	case ActionSetSearch:
		state.SetSearch(action.Search)
	case ActionSetPageSize:
		if err := state.SetPageSize(action.PageSize); err != nil {
			return nil, newValidationError(map[string]string{"pageSize": err.Error()})
		}
	case ActionSetPageIndex:
		state.SetPageIndex(action.PageIndex)
	case ActionNextPage:
		state.SetPageIndex(state.PageIndex + 1)
	case ActionPreviousPage:
		state.SetPageIndex(state.PageIndex - 1)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action.Type)
	}

	return s.render(ctx, state)
}

func (s *propertyService) render(ctx context.Context, state table.State) (*TablePage, error) {
	props, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	page := state.Apply(props)
	rows := make([]PropertyRow, len(page.Items))
	for i, p := range page.Items {
		rows[i] = PropertyRow{
			Property:         p,
			Owner:            portfolio.OwnerNamePlaceholder,
			InsuranceStatus:  timeline.Classify(p.InsuranceExpiresIn),
			InsuranceMessage: timeline.InsuranceMessage(p.InsuranceExpiresIn),
		}
	}

	s.log.Debug("Rendered property table", map[string]interface{}{
		"tab":        state.Tab,
		"search":     state.Search,
		"sort_key":   state.SortKey,
		"direction":  state.Direction,
		"page_index": page.PageIndex,
		"total":      page.Total,
	})

	return &TablePage{
		State:     state,
		Rows:      rows,
		Total:     page.Total,
		PageIndex: page.PageIndex,
		PageSize:  page.PageSize,
		PageCount: page.PageCount,
		StartItem: page.StartItem,
		EndItem:   page.EndItem,
		CanPrev:   page.PageIndex > 0,
		CanNext:   page.PageIndex < page.PageCount-1,
	}, nil
}

func (s *propertyService) Summary(ctx context.Context) (portfolio.Summary, error) {
	props, err := s.listAll(ctx)
	if err != nil {
		return portfolio.Summary{}, err
	}
	return portfolio.Summarize(props), nil
}

func (s *propertyService) Get(ctx context.Context, id int64) (*PropertyDetail, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &PropertyDetail{
		Property:           p,
		Owner:              portfolio.OwnerNamePlaceholder,
		Stats:              portfolio.StatsFor(p),
		Documents:          timeline.Build(p.Documents, now),
		InsuranceDocuments: timeline.Build(timeline.ByCategory(p.Documents, models.CategoryInsurance), now),
		Insurance:          insuranceView(p),
	}, nil
}

func (s *propertyService) Create(ctx context.Context, req CreatePropertyRequest) (*models.Property, error) {
	form := req.Form
	if errs := validation.Validate[validation.AddPropertyField](form, s.now()); len(errs) > 0 {
		s.log.Warn("Rejected add property form", map[string]interface{}{"fields": errs.Strings()})
		return nil, newValidationError(errs.Strings())
	}

	p := &models.Property{
		Address:       strings.TrimSpace(form.Address),
		Location:      formatLocation(form.City, form.State, form.ZipCode),
		Units:         NewPropertyUnits,
		Occupancy:     NewPropertyOccupancy,
		Type:          PropertyTypeFor(form.PropertyType),
		Name:          strings.TrimSpace(form.PropertyName),
		RoofType:      form.RoofType,
		BuildYear:     atoi(form.BuildYear),
		Stories:       atoi(form.NumberOfStories),
		SquareFootage: atoi(form.SquareFootage),
		Documents:     []models.Document{},
		Events:        []models.PropertyEvent{},
		History:       []models.PropertyHistoryEntry{},
	}
	if req.Coordinates != nil && req.Coordinates.Valid() {
		p.Coordinates = *req.Coordinates
	}
	if s.images != nil {
		p.Image = s.images.PropertyImage(ctx, req.Coordinates)
	}

	created, err := s.repo.Add(ctx, p)
	if err != nil {
		s.log.Error("Failed to add property", err, map[string]interface{}{"address": p.Address})
		return nil, fmt.Errorf("failed to add property: %w", err)
	}

	s.log.Info("Property added", map[string]interface{}{
		"property_id": created.ID,
		"address":     created.Address,
		"type":        created.Type,
	})
	return created, nil
}

// PropertyTypeFor maps the detailed type picked in the add-property form to the
// portfolio tab it is listed under.
func PropertyTypeFor(formType string) models.PropertyType {
	switch formType {
	case "apartment", "condo", "multi-family":
		return models.PropertyTypeApartment
	default:
		return models.PropertyTypeHouse
	}
}

// formatLocation renders "City, ST ZIP" like the seeded properties.
func formatLocation(city, state, zip string) string {
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", strings.TrimSpace(city), strings.TrimSpace(state), strings.TrimSpace(zip)))
}

// atoi is only called on values that already passed validation.
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func (s *propertyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
		}
		s.log.Error("Failed to delete property", err, map[string]interface{}{"property_id": id})
		return fmt.Errorf("failed to delete property %d: %w", id, err)
	}

	s.log.Info("Property deleted", map[string]interface{}{"property_id": id})
	return nil
}

func (s *propertyService) Nearby(ctx context.Context, id int64, radiusMiles float64) ([]portfolio.Neighbor, error) {
	if radiusMiles <= 0 {
		radiusMiles = portfolio.DefaultNearbyRadiusMiles
	}

	origin, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	props, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	neighbors := portfolio.Nearby(props, origin, radiusMiles)
	s.log.Debug("Nearby properties found", map[string]interface{}{
		"property_id":  id,
		"radius_miles": radiusMiles,
		"count":        len(neighbors),
	})
	return neighbors, nil
}
