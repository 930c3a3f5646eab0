package validation

import (
	"time"
)

// State tracks which fields were visited and which errors are currently shown.
//
// An error is only shown for a touched field. Once a touched field has errored,
// every change revalidates it so the error clears as soon as the input is fixed.
type State[F ~string] struct {
	Touched map[F]bool   `json:"touched"`
	Errors  map[F]string `json:"errors"`
	Errored map[F]bool   `json:"errored"`
}

// NewState returns an untouched state.
func NewState[F ~string]() *State[F] {
	s := &State[F]{}
	s.init()
	return s
}

func (s *State[F]) init() {
	if s.Touched == nil {
		s.Touched = map[F]bool{}
	}
	if s.Errors == nil {
		s.Errors = map[F]string{}
	}
	if s.Errored == nil {
		s.Errored = map[F]bool{}
	}
}

func (s *State[F]) set(field F, msg string) {
	if msg == "" {
		delete(s.Errors, field)
		return
	}
	s.Errors[field] = msg
	s.Errored[field] = true
}

// Blur marks the field touched and validates it.
func (s *State[F]) Blur(form Form[F], field F, now time.Time) {
	s.init()
	s.Touched[field] = true
	s.set(field, form.ValidateField(field, now))
}

// Change revalidates the field if it is touched and has errored before.
func (s *State[F]) Change(form Form[F], field F, now time.Time) {
	s.init()
	if s.Touched[field] && s.Errored[field] {
		s.set(field, form.ValidateField(field, now))
	}
}

// Revalidate re-runs the rules for the given fields that are already touched.
func (s *State[F]) Revalidate(form Form[F], now time.Time, fields ...F) {
	s.init()
	for _, field := range fields {
		if s.Touched[field] {
			s.set(field, form.ValidateField(field, now))
		}
	}
}

// Submit marks every field touched, replaces the errors with a full validation
// and reports whether the form may be submitted.
func (s *State[F]) Submit(form Form[F], now time.Time) bool {
	s.init()
	errs := Validate(form, now)
	for _, field := range form.Fields() {
		s.Touched[field] = true
	}
	s.Errors = map[F]string{}
	for field, msg := range errs {
		s.set(field, msg)
	}
	return len(errs) == 0
}

// Visible returns the error to display for field, which is empty until it is touched.
func (s *State[F]) Visible(field F) string {
	if !s.Touched[field] {
		return ""
	}
	return s.Errors[field]
}
