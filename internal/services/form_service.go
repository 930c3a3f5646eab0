package services

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/stwalsh4118/portfolio/internal/logger"
	"github.com/stwalsh4118/portfolio/internal/validation"
)

// Form event types.
const (
	EventBlur          = "blur"
	EventChange        = "change"
	EventSubmit        = "submit"
	EventSelectAddress = "select_address"
	EventToggleType    = "toggle_type"
)

// FormEvent is one interaction with a form.
type FormEvent struct {
	Type          string              `json:"type"`
	Field         string              `json:"field,omitempty"`
	Address       *validation.Address `json:"address,omitempty"`
	InsuranceType string              `json:"insuranceType,omitempty"`
}

// FormRequest carries the current values and state of a form together with the event
// to apply. Values and State are decoded according to Kind.
type FormRequest struct {
	Kind   validation.Kind
	Values json.RawMessage
	State  json.RawMessage
	Event  FormEvent
}

// FormResult is the form after the event: values, the state to post back next time,
// the errors to display and whether the form may be submitted.
type FormResult struct {
	Kind   validation.Kind   `json:"form"`
	Values any               `json:"values"`
	State  any               `json:"state"`
	Errors map[string]string `json:"errors"`
	Valid  bool              `json:"valid"`
}

// FormService runs form interactions on the server so every client shows the same
// errors at the same moment.
type FormService interface {
	Apply(req FormRequest) (*FormResult, error)
}

type formService struct {
	log *logger.Logger
	now func() time.Time
}

// NewFormService creates a FormService.
func NewFormService(log *logger.Logger) FormService {
	return &formService{log: log.Component("form_service"), now: time.Now}
}

func (s *formService) Apply(req FormRequest) (*FormResult, error) {
	result, err := s.dispatch(req, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Debug("Applied form event", map[string]interface{}{
		"form":   req.Kind,
		"event":  req.Event.Type,
		"field":  req.Event.Field,
		"errors": len(result.Errors),
	})
	return result, nil
}

func (s *formService) dispatch(req FormRequest, now time.Time) (*FormResult, error) {
	switch req.Kind {
	case validation.KindAddProperty:
		var form validation.AddPropertyForm
		if err := decodeValues(req.Values, &form); err != nil {
			return nil, err
		}
		state, err := decodeState[validation.AddPropertyField](req.State)
		if err != nil {
			return nil, err
		}
		if req.Event.Type == EventSelectAddress {
			if req.Event.Address == nil {
				return nil, newValidationError(map[string]string{"address": "address is required for select_address"})
			}
			form.SelectAddress(*req.Event.Address)
			state.Revalidate(form, now, validation.AddressFields...)
			return newFormResult(req.Kind, &form, state, now), nil
		}
		return applyEvent(req.Kind, &form, state, req.Event, now)

	case validation.KindDocumentUpload:
		var form validation.DocumentUploadForm
		if err := decodeValues(req.Values, &form); err != nil {
			return nil, err
		}
		state, err := decodeState[validation.DocumentField](req.State)
		if err != nil {
			return nil, err
		}
		return applyEvent(req.Kind, &form, state, req.Event, now)

	case validation.KindDocumentEdit:
		var form validation.DocumentEditForm
		if err := decodeValues(req.Values, &form); err != nil {
			return nil, err
		}
		state, err := decodeState[validation.DocumentField](req.State)
		if err != nil {
			return nil, err
		}
		return applyEvent(req.Kind, &form, state, req.Event, now)

	case validation.KindInsurance:
		var form validation.InsuranceForm
		if err := decodeValues(req.Values, &form); err != nil {
			return nil, err
		}
		state, err := decodeState[validation.InsuranceField](req.State)
		if err != nil {
			return nil, err
		}
		if req.Event.Type == EventToggleType {
			form.ToggleType(req.Event.InsuranceType)
			state.Change(form, validation.FieldTypes, now)
			return newFormResult(req.Kind, &form, state, now), nil
		}
		return applyEvent(req.Kind, &form, state, req.Event, now)

	case validation.KindRoofAssessment:
		var form validation.RoofAssessmentForm
		if err := decodeValues(req.Values, &form); err != nil {
			return nil, err
		}
		state, err := decodeState[validation.RoofAssessmentField](req.State)
		if err != nil {
			return nil, err
		}
		return applyEvent(req.Kind, &form, state, req.Event, now)

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidForm, req.Kind)
	}
}

// applyEvent runs a blur, change or submit event. form is a pointer so the result
// serializes the same values that were validated.
func applyEvent[F ~string, T validation.Form[F]](kind validation.Kind, form *T, state *validation.State[F], ev FormEvent, now time.Time) (*FormResult, error) {
	switch ev.Type {
	case EventSubmit:
		state.Submit(*form, now)
		return newFormResult(kind, form, state, now), nil
	case EventBlur, EventChange:
		field := F(ev.Field)
		if !slices.Contains((*form).Fields(), field) {
			return nil, newValidationError(map[string]string{"field": fmt.Sprintf("unknown field %q", ev.Field)})
		}
		if ev.Type == EventBlur {
			state.Blur(*form, field, now)
		} else {
			state.Change(*form, field, now)
		}
		return newFormResult(kind, form, state, now), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, ev.Type)
	}
}

// newFormResult reports the visible errors of touched fields, while Valid always
// reflects every declared field of the form.
func newFormResult[F ~string, T validation.Form[F]](kind validation.Kind, form *T, state *validation.State[F], now time.Time) *FormResult {
	visible := make(map[string]string, len(state.Errors))
	for field := range state.Errors {
		if msg := state.Visible(field); msg != "" {
			visible[string(field)] = msg
		}
	}
	valid := len(validation.Validate(*form, now)) == 0
	return &FormResult{Kind: kind, Values: form, State: state, Errors: visible, Valid: valid}
}

func decodeValues(raw json.RawMessage, form any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, form); err != nil {
		return newValidationError(map[string]string{"values": "invalid form values: " + err.Error()})
	}
	return nil
}

func decodeState[F ~string](raw json.RawMessage) (*validation.State[F], error) {
	state := validation.NewState[F]()
	if len(raw) == 0 || string(raw) == "null" {
		return state, nil
	}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, newValidationError(map[string]string{"state": "invalid form state: " + err.Error()})
	}
	return state, nil
}
