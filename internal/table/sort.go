package table

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortNone                  SortKey = ""
	SortID                    SortKey = "id"
	SortAddress               SortKey = "address"
	SortLocation              SortKey = "location"
	SortUnits                 SortKey = "units"
	SortOccupancy             SortKey = "occupancy"
	SortAcquisitionPrice      SortKey = "acquisitionPrice"
	SortMarketValue           SortKey = "marketValue"
	SortLoanBalance           SortKey = "loanBalance"
	SortEquity                SortKey = "equity"
	SortType                  SortKey = "type"
	SortInsuranceExpiresIn    SortKey = "insuranceExpiresIn"
	SortLastRoofingAssessment SortKey = "lastRoofingAssessment"
)

// Direction of a sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether d is asc or desc.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// Valid reports whether k is a sortable column. SortNone is valid.
func (k SortKey) Valid() bool {
	if k == SortNone {
		return true
	}
	_, okNum := numericKeys[k]
	_, okStr := stringKeys[k]
	return okNum || okStr
}

var numericKeys = map[SortKey]func(*models.Property) float64{
	SortID:                 func(p *models.Property) float64 { return float64(p.ID) },
	SortUnits:              func(p *models.Property) float64 { return float64(p.Units) },
	SortAcquisitionPrice:   func(p *models.Property) float64 { return p.AcquisitionPrice },
	SortMarketValue:        func(p *models.Property) float64 { return p.MarketValue },
	SortLoanBalance:        func(p *models.Property) float64 { return p.LoanBalance },
	SortEquity:             func(p *models.Property) float64 { return p.Equity },
	SortInsuranceExpiresIn: func(p *models.Property) float64 { return float64(p.InsuranceExpiresIn) },
}

// Occupancy is a display string like "83%" and is compared as text.
var stringKeys = map[SortKey]func(*models.Property) string{
	SortAddress:               func(p *models.Property) string { return p.Address },
	SortLocation:              func(p *models.Property) string { return p.Location },
	SortOccupancy:             func(p *models.Property) string { return p.Occupancy },
	SortType:                  func(p *models.Property) string { return string(p.Type) },
	SortLastRoofingAssessment: func(p *models.Property) string { return p.LastRoofingAssessment.String() },
}

// Sort returns a stably sorted copy of properties. String columns use English collation,
// numeric columns compare numerically and desc inverts the comparator, so ties keep their
// input order in both directions. An unknown or empty key returns the input order.
func Sort(properties []*models.Property, key SortKey, dir Direction) []*models.Property {
	out := slices.Clone(properties)

	var compare func(a, b *models.Property) int
	if num, ok := numericKeys[key]; ok {
		compare = func(a, b *models.Property) int {
			return cmp.Compare(num(a), num(b))
		}
	} else if str, ok := stringKeys[key]; ok {
		// a Collator keeps scratch buffers and must not be shared across goroutines
		col := collate.New(language.English)
		compare = func(a, b *models.Property) int {
			return col.CompareString(str(a), str(b))
		}
	} else {
		return out
	}

	if dir == Desc {
		slices.SortStableFunc(out, func(a, b *models.Property) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}
