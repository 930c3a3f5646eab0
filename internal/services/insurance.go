package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stwalsh4118/portfolio/internal/models"
	"github.com/stwalsh4118/portfolio/internal/timeline"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// InsuranceView is the insurance tab: the policy and the expiry badge of the property.
type InsuranceView struct {
	Policy      models.InsurancePolicy `json:"policy"`
	ExpiresIn   int                    `json:"expiresIn"`
	Status      timeline.Status        `json:"status,omitempty"`
	Message     string                 `json:"message"`
	TypeOptions []string               `json:"typeOptions"`
}

// RoofAssessmentStatusPending is the status of every acknowledged request.
const RoofAssessmentStatusPending = "pending"

// RoofAssessment acknowledges a roof assessment request.
type RoofAssessment struct {
	ID              string       `json:"id"`
	PropertyID      int64        `json:"propertyId"`
	PreferredDate   models.Date  `json:"preferredDate"`
	AlternativeDate *models.Date `json:"alternativeDate,omitempty"`
	ContactPhone    string       `json:"contactPhone"`
	Notes           string       `json:"notes,omitempty"`
	Status          string       `json:"status"`
	RequestedAt     time.Time    `json:"requestedAt"`
}

func insuranceView(p *models.Property) *InsuranceView {
	policy := models.DefaultInsurancePolicy()
	if p.Insurance != nil {
		policy = *p.Insurance
	}
	return &InsuranceView{
		Policy:      policy,
		ExpiresIn:   p.InsuranceExpiresIn,
		Status:      timeline.Classify(p.InsuranceExpiresIn),
		Message:     timeline.InsuranceMessage(p.InsuranceExpiresIn),
		TypeOptions: validation.InsuranceTypeOptions,
	}
}

func (s *propertyService) Insurance(ctx context.Context, id int64) (*InsuranceView, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return insuranceView(p), nil
}

func (s *propertyService) UpdateInsurance(ctx context.Context, id int64, form validation.InsuranceForm) (*InsuranceView, error) {
	now := s.now()

	if errs := validation.Validate[validation.InsuranceField](form, now); len(errs) > 0 {
		s.log.Warn("Rejected insurance form", map[string]interface{}{"property_id": id, "fields": errs.Strings()})
		return nil, newValidationError(errs.Strings())
	}

	policy := &models.InsurancePolicy{
		Types:            slices.Clone(form.Types),
		Carrier:          strings.TrimSpace(form.Carrier),
		PolicyNumber:     strings.TrimSpace(form.PolicyNumber),
		PaymentFrequency: form.PaymentFrequency,
		AnnualPremium:    strings.TrimSpace(form.AnnualPremium),
		RenewalDate:      form.RenewalDate,
	}
	// the renewal date passed DateValue and drives the insurance column of the table
	expiresIn := timeline.DaysUntil(models.MustDate(form.RenewalDate), now)

	p, err := s.update(ctx, id, "update insurance", func(p *models.Property) error {
		p.Insurance = policy
		p.InsuranceExpiresIn = expiresIn
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Insurance policy updated", map[string]interface{}{
		"property_id": id,
		"carrier":     p.Insurance.Carrier,
		"expires_in":  p.InsuranceExpiresIn,
	})
	return insuranceView(p), nil
}

func (s *propertyService) RequestRoofAssessment(ctx context.Context, id int64, form validation.RoofAssessmentForm) (*RoofAssessment, error) {
	now := s.now()

	if errs := validation.Validate[validation.RoofAssessmentField](form, now); len(errs) > 0 {
		s.log.Warn("Rejected roof assessment request", map[string]interface{}{"property_id": id, "fields": errs.Strings()})
		return nil, newValidationError(errs.Strings())
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	// both dates already passed FutureDate, so they parse
	req := &RoofAssessment{
		ID:            uuid.New().String(),
		PropertyID:    p.ID,
		PreferredDate: models.MustDate(form.PreferredDate),
		ContactPhone:  validation.NormalizePhone(form.ContactPhone),
		Notes:         form.Notes,
		Status:        RoofAssessmentStatusPending,
		RequestedAt:   now.UTC(),
	}
	if form.AlternativeDate != "" {
		alt := models.MustDate(form.AlternativeDate)
		req.AlternativeDate = &alt
	}

	s.log.Info("Roof assessment requested", map[string]interface{}{
		"property_id":      p.ID,
		"assessment_id":    req.ID,
		"preferred_date":   req.PreferredDate.String(),
		"last_assessment":  p.LastRoofingAssessment.String(),
		"alternative_date": form.AlternativeDate,
	})
	return req, nil
}
