package repository

import (
	"time"

	"github.com/stwalsh4118/portfolio/internal/models"
)

const unsplashBase = "https://images.unsplash.com/photo-"

func baseDocuments() []models.Document {
	return []models.Document{
		{
			ID:         "doc1",
			Name:       "Property Insurance Policy",
			Type:       "PDF",
			Size:       "2.4 MB",
			UploadedAt: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			StartDate:  models.MustDate("2024-01-15"),
			EndDate:    models.MustDate("2025-01-15"),
			Category:   models.CategoryInsurance,
		},
		{
			ID:         "doc2",
			Name:       "Unit A Lease Agreement",
			Type:       "PDF",
			Size:       "1.8 MB",
			UploadedAt: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			StartDate:  models.MustDate("2024-02-01"),
			EndDate:    models.MustDate("2024-03-25"),
			Category:   models.CategoryLease,
		},
	}
}

func baseEvents() []models.PropertyEvent {
	return []models.PropertyEvent{
		{
			ID:          "evt1",
			Type:        models.EventWeather,
			Severity:    models.SeverityHigh,
			Date:        models.MustDate("2024-03-15"),
			Description: "Severe hailstorm caused minor roof damage",
		},
		{
			ID:          "evt2",
			Type:        models.EventWeather,
			Severity:    models.SeverityMedium,
			Date:        models.MustDate("2024-02-20"),
			Description: "Heavy snowfall - 12 inches accumulated",
		},
	}
}

func baseHistory() []models.PropertyHistoryEntry {
	purchase, renovation := 200000.0, 25000.0
	return []models.PropertyHistoryEntry{
		{
			ID:          "hist1",
			Date:        models.MustDate("2023-12-01"),
			Type:        models.HistoryPurchase,
			Description: "Property acquisition completed",
			Amount:      &purchase,
			Status:      models.StatusCompleted,
		},
		{
			ID:          "hist2",
			Date:        models.MustDate("2024-01-15"),
			Type:        models.HistoryRenovation,
			Description: "Kitchen remodeling",
			Amount:      &renovation,
			Status:      models.StatusCompleted,
		},
	}
}

type seedRow struct {
	address, location   string
	units               int
	occupancy           string
	acquisition, market float64
	loan, equity        float64
	typ                 models.PropertyType
	roofAssessed        string
	insuranceDays       int
	lat, lng            float64
	photo               string
}

var seedRows = []seedRow{
	{"3806 Sweetbriar Ln", "Lincoln, NE 68516", 2, "100%", 200000, 300800, 130788, 170012, models.PropertyTypeHouse, "2024-01-15", 280, 40.716590, -96.617990, "1568605114967-8130f3a36994"},
	{"742 Evergreen Terrace", "Springfield, IL 62701", 1, "100%", 185000, 245000, 120000, 125000, models.PropertyTypeHouse, "2023-11-20", 45, 39.7817, -89.6501, "1518780664697-55e3ad937233"},
	{"221B Baker Street", "Boston, MA 02108", 4, "75%", 450000, 580000, 300000, 280000, models.PropertyTypeApartment, "2024-02-01", 12, 42.3601, -71.0589, "1545324418-cc1a3fa10c00"},
	{"17 Cherry Tree Lane", "Portland, OR 97201", 3, "100%", 380000, 450000, 250000, 200000, models.PropertyTypeApartment, "2024-01-05", 180, 45.5155, -122.6789, "1512917774080-9991f1c4c750"},
	{"4 Privet Drive", "Seattle, WA 98101", 1, "100%", 420000, 550000, 280000, 270000, models.PropertyTypeHouse, "2023-12-15", 90, 47.6062, -122.3321, "1583608205776-bfd35f0d9f83"},
	{"31 Spooner Street", "Austin, TX 78701", 2, "100%", 310000, 380000, 200000, 180000, models.PropertyTypeHouse, "2024-02-10", 150, 30.2672, -97.7431, "1592595896616-c37162298647"},
	{"124 Conch Street", "Miami, FL 33101", 6, "83%", 680000, 820000, 450000, 370000, models.PropertyTypeApartment, "2024-01-20", 220, 25.7617, -80.1918, "1580587771525-78b9dba3b914"},
	{"742 Evergreen Terrace", "Denver, CO 80202", 1, "100%", 290000, 350000, 180000, 170000, models.PropertyTypeHouse, "2023-11-30", 30, 39.7392, -104.9903, "1576941089067-2de3c901e126"},
	{"15 Yemen Road", "Chicago, IL 60601", 8, "88%", 890000, 1100000, 600000, 500000, models.PropertyTypeApartment, "2024-02-15", 300, 41.8781, -87.6298, "1493246507139-91e8fad9978e"},
	{"320 Maple Drive", "Nashville, TN 37201", 2, "100%", 340000, 420000, 220000, 200000, models.PropertyTypeHouse, "2024-01-10", 160, 36.1627, -86.7816, "1600596542815-ffad4c1539a9"},
	{"52 Festive Road", "San Diego, CA 92101", 4, "100%", 620000, 780000, 400000, 380000, models.PropertyTypeApartment, "2024-02-05", 240, 32.7157, -117.1611, "1605276374104-dee2a0ed3cd6"},
	{"711 Maple Street", "Phoenix, AZ 85001", 1, "100%", 280000, 340000, 180000, 160000, models.PropertyTypeHouse, "2023-12-20", 120, 33.4484, -112.0740, "1600585154340-be6161a56a0c"},
	{"23 Railway Cuttings", "Las Vegas, NV 89101", 6, "83%", 720000, 850000, 480000, 370000, models.PropertyTypeApartment, "2024-01-25", 200, 36.1699, -115.1398, "1628624747186-a941c476b7ef"},
	{"62 West Wallaby Street", "Salt Lake City, UT 84101", 2, "100%", 350000, 420000, 230000, 190000, models.PropertyTypeHouse, "2024-02-20", 270, 40.7608, -111.8910, "1625602812206-5ec545ca1231"},
	{"29 Acacia Road", "Atlanta, GA 30301", 4, "75%", 480000, 580000, 320000, 260000, models.PropertyTypeApartment, "2024-01-30", 15, 33.7490, -84.3880, "1626178793926-22b28830aa30"},
	{"7 Savile Row", "Houston, TX 77001", 3, "100%", 410000, 490000, 270000, 220000, models.PropertyTypeApartment, "2024-02-25", 330, 29.7604, -95.3698, "1633505899118-4ca6bd143043"},
}

// SeedProperties returns the demo portfolio with ids 1..16. Every call builds fresh
// values, so callers may mutate the result.
func SeedProperties() []*models.Property {
	out := make([]*models.Property, len(seedRows))
	for i, r := range seedRows {
		out[i] = &models.Property{
			ID:                    int64(i + 1),
			Address:               r.address,
			Location:              r.location,
			Units:                 r.units,
			Occupancy:             r.occupancy,
			AcquisitionPrice:      r.acquisition,
			MarketValue:           r.market,
			LoanBalance:           r.loan,
			Equity:                r.equity,
			Type:                  r.typ,
			LastRoofingAssessment: models.MustDate(r.roofAssessed),
			InsuranceExpiresIn:    r.insuranceDays,
			Coordinates:           models.Point{Lat: r.lat, Lng: r.lng},
			Image:                 unsplashBase + r.photo,
			Documents:             baseDocuments(),
			Events:                baseEvents(),
			History:               baseHistory(),
		}
	}
	return out
}
