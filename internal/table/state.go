package table

import (
	"errors"
	"fmt"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// ErrInvalidPageSize is returned when a page size outside PageSizes is requested.
var ErrInvalidPageSize = errors.New("invalid page size")

// State is everything the table view remembers between renders.
type State struct {
	Tab       Tab       `json:"tab"`
	Search    string    `json:"search"`
	SortKey   SortKey   `json:"sortKey"`
	Direction Direction `json:"direction"`
	PageIndex int       `json:"pageIndex"`
	PageSize  int       `json:"pageSize"`
}

// NewState returns the initial view: all tab, no search, unsorted, first page.
func NewState(pageSize int) State {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return State{Tab: TabAll, Direction: Asc, PageSize: pageSize}
}

// ToggleSort flips the direction when key is already the sort column, otherwise
// sorts ascending by key.
func (s *State) ToggleSort(key SortKey) {
	if s.SortKey == key && s.Direction == Asc {
		s.Direction = Desc
	} else {
		s.Direction = Asc
	}
	s.SortKey = key
}

// SetTab switches the type tab.
func (s *State) SetTab(tab Tab) {
	s.Tab = tab
}

// SetSearch replaces the search term. The term is used as typed.
func (s *State) SetSearch(term string) {
	s.Search = term
}

// SetPageSize changes the rows per page and returns to the first page.
func (s *State) SetPageSize(size int) error {
	if !ValidPageSize(size) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	s.PageSize = size
	s.PageIndex = 0
	return nil
}

// SetPageIndex moves to a page. Apply clamps it against the filtered count.
func (s *State) SetPageIndex(index int) {
	s.PageIndex = max(index, 0)
}

// Page is one rendered page of the table.
type Page struct {
	Items     []*models.Property `json:"items"`
	Total     int                `json:"total"`
	PageIndex int                `json:"pageIndex"`
	PageSize  int                `json:"pageSize"`
	PageCount int                `json:"pageCount"`
	StartItem int                `json:"startItem"`
	EndItem   int                `json:"endItem"`
}

// Apply filters, sorts and paginates properties. The page index is clamped to the last
// page of the filtered result and written back to the state.
func (s *State) Apply(properties []*models.Property) Page {
	if !ValidPageSize(s.PageSize) {
		s.PageSize = DefaultPageSize
	}

	rows := Sort(Filter(properties, s.Tab, s.Search), s.SortKey, s.Direction)
	s.PageIndex = min(max(s.PageIndex, 0), LastPageIndex(len(rows), s.PageSize))

	items := Paginate(rows, s.PageIndex, s.PageSize)
	page := Page{
		Items:     items,
		Total:     len(rows),
		PageIndex: s.PageIndex,
		PageSize:  s.PageSize,
		PageCount: PageCount(len(rows), s.PageSize),
	}
	if len(items) > 0 {
		page.StartItem = s.PageIndex*s.PageSize + 1
		page.EndItem = page.StartItem + len(items) - 1
	}
	return page
}
