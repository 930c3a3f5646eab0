// Package table derives the rows of the portfolio table from the property collection:
// tab and search filtering, column sorting and pagination. Every function is pure and
// leaves its input untouched.
package table

import (
	"strconv"
	"strings"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// Tab selects a coarse property type.
type Tab string

const (
	TabAll       Tab = "all"
	TabHouse     Tab = "house"
	TabApartment Tab = "apartment"
)

// Valid reports whether t is one of the known tabs.
func (t Tab) Valid() bool {
	return t == TabAll || t == TabHouse || t == TabApartment
}

// Filter keeps the properties on the given tab whose address, location, type, units or
// occupancy contain search, ignoring case. An empty tab behaves like TabAll and an empty
// search matches everything.
func Filter(properties []*models.Property, tab Tab, search string) []*models.Property {
	needle := strings.ToLower(search)
	out := make([]*models.Property, 0, len(properties))
	for _, p := range properties {
		if tab != "" && tab != TabAll && string(p.Type) != string(tab) {
			continue
		}
		if matches(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p *models.Property, needle string) bool {
	if needle == "" {
		return true
	}
	for _, field := range []string{
		p.Address,
		p.Location,
		string(p.Type),
		strconv.Itoa(p.Units),
		p.Occupancy,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
