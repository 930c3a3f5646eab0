// Package validation holds the field rules shared by every dashboard form and the
// touched/errored state machine that decides when an error is shown.
//
// Every rule returns "" for a valid value or the message to display next to the field.
package validation

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/stwalsh4118/portfolio/internal/models"
)

// Messages for rules whose text does not depend on the field label.
const (
	MsgInvalidYear       = "Please enter a valid year"
	MsgInvalidStories    = "Please enter a valid number of stories"
	MsgInvalidSquareFeet = "Please enter a valid square footage"
	MsgInvalidPremium    = "Valid annual premium is required"
	MsgNoInsuranceType   = "Select at least one insurance type"
	MsgEndBeforeStart    = "End date must be after start date"
	MsgDateInPast        = "Date must be in the future"
	MsgInvalidDate       = "Please enter a valid date"
	MsgInvalidPhone      = "Please enter a valid phone number"
	MsgFileRequired      = "Please select a file to upload"
)

// Numeric bounds for the add-property form.
const (
	MinBuildYear     = 1800
	MinStories       = 1
	MaxStories       = 200
	MinSquareFootage = 100
	MaxSquareFootage = 1000000
)

var (
	phonePattern    = regexp.MustCompile(`^\+?\d{10,}$`)
	phoneSeparators = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "", ".", "")
)

// RequiredMessage builds the "<label> is required" message.
func RequiredMessage(label string) string {
	return label + " is required"
}

// Required rejects empty and whitespace-only text.
func Required(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return RequiredMessage(label)
	}
	return ""
}

// Selected rejects an empty selection. Unlike Required it does not trim.
func Selected(label, value string) string {
	if value == "" {
		return RequiredMessage(label)
	}
	return ""
}

// OneOf requires a selection from options. Values the form never offers are rejected
// so they cannot reach stored records.
func OneOf(label, value string, options []string) string {
	if value == "" {
		return RequiredMessage(label)
	}
	if !slices.Contains(options, value) {
		return "Please select a valid " + strings.ToLower(label)
	}
	return ""
}

// IntInRange requires an integer within [lo, hi]; anything else yields invalid.
func IntInRange(label, value string, lo, hi int, invalid string) string {
	if msg := Required(label, value); msg != "" {
		return msg
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < lo || n > hi {
		return invalid
	}
	return ""
}

// BuildYear accepts years from 1800 through the calendar year of now.
func BuildYear(value string, now time.Time) string {
	return IntInRange("Build year", value, MinBuildYear, now.Year(), MsgInvalidYear)
}

// NumberOfStories accepts 1 through 200.
func NumberOfStories(value string) string {
	return IntInRange("Number of stories", value, MinStories, MaxStories, MsgInvalidStories)
}

// SquareFootage accepts 100 through 1,000,000.
func SquareFootage(value string) string {
	return IntInRange("Square footage", value, MinSquareFootage, MaxSquareFootage, MsgInvalidSquareFeet)
}

// AnnualPremium requires a value that parses as a number.
func AnnualPremium(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return MsgInvalidPremium
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return MsgInvalidPremium
	}
	return ""
}

// InsuranceTypes requires at least one selected coverage type.
func InsuranceTypes(types []string) string {
	for _, t := range types {
		if t != "" {
			return ""
		}
	}
	return MsgNoInsuranceType
}

// EndDate requires end and, when start is a valid date, end strictly after start.
func EndDate(start, end string) string {
	if end == "" {
		return RequiredMessage("End date")
	}
	startDate, err := models.ParseDate(start)
	if err != nil {
		// start reports its own error
		return ""
	}
	endDate, err := models.ParseDate(end)
	if err != nil || !endDate.After(startDate.Time) {
		return MsgEndBeforeStart
	}
	return ""
}

// DateValue requires a YYYY-MM-DD calendar date.
func DateValue(label, value string) string {
	if value == "" {
		return RequiredMessage(label)
	}
	if _, err := models.ParseDate(value); err != nil {
		return MsgInvalidDate
	}
	return ""
}

// FutureDate accepts an empty value or a date on or after the calendar date of now.
func FutureDate(value string, now time.Time) string {
	if value == "" {
		return ""
	}
	d, err := models.ParseDate(value)
	if err != nil || d.Before(models.DateOf(now).Time) {
		return MsgDateInPast
	}
	return ""
}

// NormalizePhone strips the separators people type into phone numbers.
func NormalizePhone(value string) string {
	return phoneSeparators.Replace(value)
}

// Phone requires a number with an optional leading "+" and at least ten digits.
func Phone(label, value string) string {
	if value == "" {
		return RequiredMessage(label)
	}
	if !phonePattern.MatchString(NormalizePhone(value)) {
		return MsgInvalidPhone
	}
	return ""
}
