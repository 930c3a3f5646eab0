// Package portfolio reduces the property collection to the figures shown on the dashboard.
package portfolio

import (
	"math"
	"strconv"
	"strings"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// PlaceholderRevenueRate stands in for a real rent model. Monthly revenue is estimated
// as this fraction of market value until actual rent data exists.
const PlaceholderRevenueRate = 0.008

// OwnerNamePlaceholder is rendered in the owner column until owners are modelled.
const OwnerNamePlaceholder = "Owner Name"

// Summary holds the headline cards of the dashboard.
type Summary struct {
	TotalProperties         int     `json:"totalProperties"`
	TotalUnits              int     `json:"totalUnits"`
	EstimatedMonthlyRevenue float64 `json:"estimatedMonthlyRevenue"`
	AverageOccupancy        float64 `json:"averageOccupancy"`
	AverageOccupancyDisplay int     `json:"averageOccupancyDisplay"`
	TotalValue              float64 `json:"totalValue"`
}

// Summarize reduces the full collection. An empty collection yields zeros.
func Summarize(properties []*models.Property) Summary {
	s := Summary{TotalProperties: len(properties)}
	if len(properties) == 0 {
		return s
	}

	var occupancy float64
	for _, p := range properties {
		s.TotalUnits += p.Units
		s.EstimatedMonthlyRevenue += EstimatedMonthlyRevenue(p)
		s.TotalValue += p.MarketValue
		occupancy += float64(ParseOccupancy(p.Occupancy))
	}
	s.AverageOccupancy = occupancy / float64(len(properties))
	s.AverageOccupancyDisplay = int(math.Round(s.AverageOccupancy))
	return s
}

// EstimatedMonthlyRevenue applies PlaceholderRevenueRate to a single property.
func EstimatedMonthlyRevenue(p *models.Property) float64 {
	return p.MarketValue * PlaceholderRevenueRate
}

// ParseOccupancy reads the whole percentage of a string like "83%". Fractions are
// truncated and unparseable values count as zero.
func ParseOccupancy(occupancy string) int {
	s := strings.TrimSpace(strings.Replace(occupancy, "%", "", 1))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Stats are the quick figures on the property detail page.
type Stats struct {
	Units            int     `json:"units"`
	Occupancy        string  `json:"occupancy"`
	AcquisitionPrice float64 `json:"acquisitionPrice"`
	MarketValue      float64 `json:"marketValue"`
	LoanBalance      float64 `json:"loanBalance"`
	Equity           float64 `json:"equity"`
	MonthlyRevenue   float64 `json:"estimatedMonthlyRevenue"`
	Appreciation     float64 `json:"appreciation"`
}

// StatsFor computes the detail page figures for p.
func StatsFor(p *models.Property) Stats {
	return Stats{
		Units:            p.Units,
		Occupancy:        p.Occupancy,
		AcquisitionPrice: p.AcquisitionPrice,
		MarketValue:      p.MarketValue,
		LoanBalance:      p.LoanBalance,
		Equity:           p.Equity,
		MonthlyRevenue:   EstimatedMonthlyRevenue(p),
		Appreciation:     p.MarketValue - p.AcquisitionPrice,
	}
}
