package table

import (
	"github.com/stwalsh4118/portfolio/internal/models"
)

// PageSizes are the rows-per-page options offered by the table.
var PageSizes = []int{5, 10, 15, 20}

// DefaultPageSize is the initial rows-per-page.
const DefaultPageSize = 10

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Paginate returns the zero-based page [pageIndex*pageSize, (pageIndex+1)*pageSize).
// Pages outside the collection are empty.
func Paginate(properties []*models.Property, pageIndex, pageSize int) []*models.Property {
	if pageSize <= 0 || pageIndex < 0 {
		return []*models.Property{}
	}
	start := pageIndex * pageSize
	if start >= len(properties) {
		return []*models.Property{}
	}
	end := min(start+pageSize, len(properties))
	return properties[start:end:end]
}

// PageCount is ceil(total/pageSize).
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// LastPageIndex is the highest valid page index for total rows, never below zero.
func LastPageIndex(total, pageSize int) int {
	return max(PageCount(total, pageSize)-1, 0)
}
