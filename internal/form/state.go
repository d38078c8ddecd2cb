// Package form owns the job-offer form: the FormState reducer, the
// submission rules and the Controller that ties extraction, local drafts,
// the remote API and the offline queue together.
//
// State is a value. Every transition returns a new State and leaves the
// receiver untouched, so the Controller can swap states under its lock.
package form

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"jobmate/posting-service/internal/offer"
)

const dateLayout = "2006-01-02"

// DefaultSalaryAmount is the salary shown on a fresh form.
const DefaultSalaryAmount = "35,000"

// Field names accepted by Update. They match the JSON names of offer.Draft.
const (
	FieldTitle            = "jobTitle"
	FieldDescription      = "jobDescription"
	FieldLocation         = "location"
	FieldRequirements     = "requirements"
	FieldEducation        = "education"
	FieldExperience       = "experience"
	FieldDeadline         = "deadline"
	FieldSalaryAmount     = "salaryAmount"
	FieldPaymentType      = "paymentType"
	FieldPaymentFrequency = "paymentFrequency"
	FieldSalaryNegotiable = "salaryNegotiable"
	FieldHiringMultiple   = "hiringMultiple"

	fieldEmploymentTypes = "employmentTypes"
	fieldSchedules       = "selectedSchedules"
)

// State is the form as the operator sees it.
type State struct {
	Draft     offer.Draft            `json:"draft"`
	WordCount int                    `json:"wordCount"`
	Errors    offer.ValidationErrors `json:"errors"`
}

// NewState returns the form as first displayed.
func NewState() State {
	return State{
		Draft: offer.Draft{
			EmploymentTypes:  offer.EmploymentTypes{FullTime: true, PartTime: true},
			Schedules:        []string{},
			PaymentType:      offer.PaymentCustom,
			SalaryAmount:     DefaultSalaryAmount,
			PaymentFrequency: offer.FrequencyYearly,
		},
		Errors: offer.ValidationErrors{},
	}
}

// Update sets one field. See UpdateAt.
func (s State) Update(field, value string) (State, error) {
	return s.UpdateAt(field, value, time.Now())
}

// UpdateAt sets one field from its raw string value, with now deciding
// which deadlines lie in the past. A field's error is cleared once the
// new value would satisfy its rule.
func (s State) UpdateAt(field, value string, now time.Time) (State, error) {
	next := s.clone()
	d := &next.Draft

	switch field {
	case FieldTitle:
		d.Title = value
		if utf8.RuneCountInString(strings.TrimSpace(value)) >= minTitleLength {
			next.clearError(field)
		}

	case FieldDescription:
		d.Description = value
		next.WordCount = WordCount(value)
		next.clearError(field)

	case FieldLocation:
		d.Location = value
		next.clearIfPresent(field, value)
	case FieldRequirements:
		d.Requirements = value
		next.clearIfPresent(field, value)
	case FieldExperience:
		d.Experience = value
		next.clearIfPresent(field, value)
	case FieldSalaryAmount:
		d.SalaryAmount = value
		next.clearIfPresent(field, value)

	case FieldEducation:
		if value != "" && !offer.IsEducation(value) {
			return s, errors.Wrapf(ErrInvalidValue, "education %q", value)
		}
		d.Education = value
		next.clearIfPresent(field, value)

	case FieldDeadline:
		if value != "" {
			day, err := time.Parse(dateLayout, value)
			if err != nil {
				return s, errors.Wrapf(ErrInvalidValue, "deadline %q is not YYYY-MM-DD", value)
			}
			if day.Format(dateLayout) < now.Format(dateLayout) {
				return s, errors.Wrapf(ErrInvalidValue, "deadline %s is in the past", value)
			}
		}
		d.Deadline = value
		next.clearIfPresent(field, value)

	case FieldPaymentType:
		pt, err := offer.ParsePaymentType(value)
		if err != nil {
			return s, errors.Wrap(ErrInvalidValue, err.Error())
		}
		d.PaymentType = pt

	case FieldPaymentFrequency:
		f, err := offer.ParseFrequency(value)
		if err != nil {
			return s, errors.Wrap(ErrInvalidValue, err.Error())
		}
		d.PaymentFrequency = f

	case FieldSalaryNegotiable, FieldHiringMultiple:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, errors.Wrapf(ErrInvalidValue, "%s %q is not a boolean", field, value)
		}
		if field == FieldSalaryNegotiable {
			d.SalaryNegotiable = b
		} else {
			d.HiringMultiple = b
		}

	default:
		return s, errors.Wrapf(ErrUnknownField, "%q", field)
	}

	return next, nil
}

// ToggleEmploymentType flips one employment flag.
func (s State) ToggleEmploymentType(kind offer.EmploymentKind) (State, error) {
	types, err := s.Draft.EmploymentTypes.Toggle(kind)
	if err != nil {
		return s, errors.Wrap(ErrInvalidValue, err.Error())
	}
	next := s.clone()
	next.Draft.EmploymentTypes = types
	if types.Any() {
		next.clearError(fieldEmploymentTypes)
	}
	return next, nil
}

// ToggleSchedule removes schedule when selected and appends it otherwise.
func (s State) ToggleSchedule(schedule string) (State, error) {
	if !offer.IsSchedule(schedule) {
		return s, errors.Wrapf(ErrInvalidValue, "schedule %q", schedule)
	}
	next := s.clone()
	if i := slices.Index(next.Draft.Schedules, schedule); i >= 0 {
		next.Draft.Schedules = slices.Delete(next.Draft.Schedules, i, i+1)
	} else {
		next.Draft.Schedules = append(next.Draft.Schedules, schedule)
	}
	if len(next.Draft.Schedules) > 0 {
		next.clearError(fieldSchedules)
	}
	return next, nil
}

// SelectSchedule appends schedule unless it is already selected.
func (s State) SelectSchedule(schedule string) (State, error) {
	if !offer.IsSchedule(schedule) {
		return s, errors.Wrapf(ErrInvalidValue, "schedule %q", schedule)
	}
	if slices.Contains(s.Draft.Schedules, schedule) {
		return s, nil
	}
	next := s.clone()
	next.Draft.Schedules = append(next.Draft.Schedules, schedule)
	next.clearError(fieldSchedules)
	return next, nil
}

// ApplyExtracted replaces every field with the extracted draft and clears
// all errors. An empty extracted description keeps the current one.
func (s State) ApplyExtracted(d offer.Draft) State {
	desc := s.Draft.Description
	if d.Description != "" {
		desc = d.Description
	}
	d.Description = desc
	d.Schedules = slices.Clone(d.Schedules)
	if d.Schedules == nil {
		d.Schedules = []string{}
	}
	return State{
		Draft:     d,
		WordCount: WordCount(desc),
		Errors:    offer.ValidationErrors{},
	}
}

// Reset returns a fresh form.
func (s State) Reset() State {
	return NewState()
}

// Validate recomputes every error and stores the result on the state.
func (s State) Validate() State {
	next := s.clone()
	next.Errors = Validate(next.Draft)
	return next
}

// Valid reports whether the stored errors are empty.
func (s State) Valid() bool {
	return len(s.Errors) == 0
}

func (s State) clone() State {
	next := s
	next.Draft.Schedules = slices.Clone(s.Draft.Schedules)
	if next.Draft.Schedules == nil {
		next.Draft.Schedules = []string{}
	}
	next.Errors = make(offer.ValidationErrors, len(s.Errors))
	for k, v := range s.Errors {
		next.Errors[k] = v
	}
	return next
}

func (s *State) clearError(field string) {
	delete(s.Errors, field)
}

func (s *State) clearIfPresent(field, value string) {
	if strings.TrimSpace(value) != "" {
		s.clearError(field)
	}
}
