// Package timeline classifies how close documents and insurance policies are to expiring
// and orders the document timeline.
package timeline

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// Status of an expiring item.
type Status string

const (
	StatusNone    Status = ""
	StatusDanger  Status = "danger"
	StatusWarning Status = "warning"
)

// Thresholds in whole days.
const (
	DangerDays  = 14
	WarningDays = 30
)

// Classify buckets a day count. Anything at or below DangerDays, including overdue
// counts, is danger.
func Classify(daysLeft int) Status {
	switch {
	case daysLeft <= DangerDays:
		return StatusDanger
	case daysLeft <= WarningDays:
		return StatusWarning
	default:
		return StatusNone
	}
}

// Expiration is the computed badge of a document.
type Expiration struct {
	Status   Status `json:"status,omitempty"`
	DaysLeft int    `json:"daysLeft"`
	Message  string `json:"message,omitempty"`
}

// DaysUntil is ceil((end - now) / 24h).
func DaysUntil(end models.Date, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// ExpirationStatus classifies a document end date relative to now.
func ExpirationStatus(end models.Date, now time.Time) Expiration {
	days := DaysUntil(end, now)
	status := Classify(days)
	return Expiration{Status: status, DaysLeft: days, Message: DocumentMessage(status, days)}
}

// DocumentMessage is the badge text of a document card. Items without a status get none.
func DocumentMessage(status Status, days int) string {
	switch status {
	case StatusDanger:
		return fmt.Sprintf("Expires in %d days!", days)
	case StatusWarning:
		return fmt.Sprintf("Expires in %d days", days)
	default:
		return ""
	}
}

// InsuranceMessage is the insurance column text of the portfolio table.
func InsuranceMessage(daysLeft int) string {
	switch Classify(daysLeft) {
	case StatusDanger:
		return "Critical: Insurance expires soon!"
	case StatusWarning:
		return "Warning: Insurance expiring"
	default:
		return fmt.Sprintf("%d days left", daysLeft)
	}
}

// OrderByStartDateDescending returns a copy with the most recent start date first.
// Documents with the same start date keep their relative order.
func OrderByStartDateDescending(docs []models.Document) []models.Document {
	out := slices.Clone(docs)
	slices.SortStableFunc(out, func(a, b models.Document) int {
		return b.StartDate.Compare(a.StartDate.Time)
	})
	return out
}

// ByCategory keeps the documents of one category, preserving order.
func ByCategory(docs []models.Document, category models.DocumentCategory) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Entry is a document together with its expiration badge.
type Entry struct {
	models.Document
	Expiration Expiration `json:"expiration"`
}

// Build orders docs for display and attaches each expiration badge.
func Build(docs []models.Document, now time.Time) []Entry {
	ordered := OrderByStartDateDescending(docs)
	entries := make([]Entry, len(ordered))
	for i, d := range ordered {
		entries[i] = Entry{Document: d, Expiration: ExpirationStatus(d.EndDate, now)}
	}
	return entries
}
