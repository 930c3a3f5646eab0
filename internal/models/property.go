package models

import (
	"slices"
	"time"
)

// PropertyType is the coarse category used by the portfolio tabs.
type PropertyType string

const (
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeApartment PropertyType = "apartment"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	return t == PropertyTypeHouse || t == PropertyTypeApartment
}

// Property is a single portfolio entry. It owns its documents, events and history;
// none of them exist independently of the property.
type Property struct {
	// Identity
	ID   int64        `json:"id"`
	Name string       `json:"name,omitempty"`
	Type PropertyType `json:"type"`

	// Location
	Address     string `json:"address"`
	Location    string `json:"location"`
	Coordinates Point  `json:"coordinates"`
	Image       string `json:"image"`

	// Building
	Units                 int    `json:"units"`
	BuildYear             int    `json:"buildYear,omitempty"`
	Stories               int    `json:"stories,omitempty"`
	SquareFootage         int    `json:"squareFootage,omitempty"`
	RoofType              string `json:"roofType,omitempty"`
	LastRoofingAssessment Date   `json:"lastRoofingAssessment"`

	// Financials
	AcquisitionPrice float64 `json:"acquisitionPrice"`
	MarketValue      float64 `json:"marketValue"`
	LoanBalance      float64 `json:"loanBalance"`
	Equity           float64 `json:"equity"`
	Occupancy        string  `json:"occupancy"`

	// Insurance
	Insurance          *InsurancePolicy `json:"insurance,omitempty"`
	InsuranceExpiresIn int              `json:"insuranceExpiresIn"`

	// Owned records
	Documents []Document             `json:"documents"`
	Events    []PropertyEvent        `json:"events"`
	History   []PropertyHistoryEntry `json:"history"`
}

// Clone returns a deep copy so callers can mutate the result without touching stored state.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	c := *p
	c.Documents = slices.Clone(p.Documents)
	c.Events = slices.Clone(p.Events)
	c.History = slices.Clone(p.History)
	for i, h := range c.History {
		if h.Amount != nil {
			amount := *h.Amount
			c.History[i].Amount = &amount
		}
	}
	if p.Insurance != nil {
		ins := *p.Insurance
		ins.Types = slices.Clone(p.Insurance.Types)
		c.Insurance = &ins
	}
	return &c
}

// FindDocument returns the index of the document with the given id, or -1.
func (p *Property) FindDocument(id string) int {
	for i := range p.Documents {
		if p.Documents[i].ID == id {
			return i
		}
	}
	return -1
}

// DocumentCategory groups documents in the timeline.
type DocumentCategory string

const (
	CategoryInsurance  DocumentCategory = "insurance"
	CategoryLease      DocumentCategory = "lease"
	CategoryInspection DocumentCategory = "inspection"
	CategoryPermit     DocumentCategory = "permit"
	CategoryOther      DocumentCategory = "other"
)

// Valid reports whether c is a known document category.
func (c DocumentCategory) Valid() bool {
	switch c {
	case CategoryInsurance, CategoryLease, CategoryInspection, CategoryPermit, CategoryOther:
		return true
	}
	return false
}

// Document is metadata for an uploaded file. The file bytes are never stored.
type Document struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Size       string           `json:"size"`
	Category   DocumentCategory `json:"category"`
	UploadedAt time.Time        `json:"uploadedAt"`
	StartDate  Date             `json:"startDate"`
	EndDate    Date             `json:"endDate"`
	Notes      string           `json:"notes,omitempty"`
}

// EventType classifies a property event.
type EventType string

const (
	EventWeather     EventType = "weather"
	EventMaintenance EventType = "maintenance"
	EventInspection  EventType = "inspection"
)

// Severity of a property event.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Variant maps a severity to the badge variant the dashboard renders.
func (s Severity) Variant() string {
	switch s {
	case SeverityHigh:
		return "destructive"
	case SeverityMedium:
		return "warning"
	default:
		return "secondary"
	}
}

// PropertyEvent is a read-only record of something that happened to a property.
type PropertyEvent struct {
	ID          string    `json:"id"`
	Date        Date      `json:"date"`
	Type        EventType `json:"type"`
	Severity    Severity  `json:"severity"`
	Description string    `json:"description"`
}

// HistoryType classifies a history entry.
type HistoryType string

const (
	HistoryPurchase    HistoryType = "purchase"
	HistoryRenovation  HistoryType = "renovation"
	HistoryTenant      HistoryType = "tenant"
	HistoryMaintenance HistoryType = "maintenance"
	HistoryAppraisal   HistoryType = "appraisal"
	HistoryRefinance   HistoryType = "refinance"
)

// HistoryStatus is the lifecycle state of a history entry.
type HistoryStatus string

const (
	StatusCompleted HistoryStatus = "completed"
	StatusPending   HistoryStatus = "pending"
	StatusCancelled HistoryStatus = "cancelled"
)

// Variant maps a status to the badge variant the dashboard renders.
func (s HistoryStatus) Variant() string {
	switch s {
	case StatusCompleted:
		return "success"
	case StatusPending:
		return "warning"
	case StatusCancelled:
		return "destructive"
	default:
		return "secondary"
	}
}

// PropertyHistoryEntry is a read-only record in the property's history tab.
type PropertyHistoryEntry struct {
	ID          string        `json:"id"`
	Date        Date          `json:"date"`
	Type        HistoryType   `json:"type"`
	Description string        `json:"description"`
	Amount      *float64      `json:"amount,omitempty"`
	Status      HistoryStatus `json:"status"`
}

// InsurancePolicy is the editable insurance summary shown on the insurance tab.
type InsurancePolicy struct {
	Types            []string `json:"types"`
	Carrier          string   `json:"carrier"`
	PolicyNumber     string   `json:"policyNumber"`
	PaymentFrequency string   `json:"paymentFrequency"`
	AnnualPremium    string   `json:"annualPremium"`
	RenewalDate      string   `json:"renewalDate"`
}

// DefaultInsurancePolicy is shown for properties that have never had their policy edited.
func DefaultInsurancePolicy() InsurancePolicy {
	return InsurancePolicy{
		Types:            []string{"dwelling", "liability"},
		Carrier:          "SafeGuard Insurance Co.",
		PolicyNumber:     "POL-123456",
		PaymentFrequency: "annually",
		AnnualPremium:    "2400",
		RenewalDate:      "2024-12-31",
	}
}
