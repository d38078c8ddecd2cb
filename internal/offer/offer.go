// Package offer defines the job-offer data structures shared by the
// extraction engine, the form controller and the submission queue.
package offer

import (
	"slices"

	"github.com/pkg/errors"
)

// Schedule values form the fixed working-schedule catalog.
const (
	ScheduleDay     = "Day shift"
	ScheduleNight   = "Night shift"
	ScheduleWeekend = "Weekend availability"
)

// Schedules lists the catalog in display order.
var Schedules = []string{ScheduleDay, ScheduleNight, ScheduleWeekend}

// EducationOptions is the fixed set accepted for Draft.Education.
var EducationOptions = []string{
	"High School",
	"Bachelor's Degree",
	"Master's Degree",
	"PhD",
	"Professional Certificate",
	"No formal education required",
}

// PaymentType is how the salary is expressed on the form.
type PaymentType string

const (
	PaymentHourly PaymentType = "hourly"
	PaymentCustom PaymentType = "custom"
)

// Frequency is the period a salary amount refers to.
type Frequency string

const (
	FrequencyHourly  Frequency = "hourly"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// EmploymentKind names one of the four employment-type flags.
type EmploymentKind string

const (
	EmploymentFullTime   EmploymentKind = "fullTime"
	EmploymentPartTime   EmploymentKind = "partTime"
	EmploymentOnDemand   EmploymentKind = "onDemand"
	EmploymentNegotiable EmploymentKind = "negotiable"
)

// EmploymentTypes holds four independent flags; any combination is valid.
type EmploymentTypes struct {
	FullTime   bool `json:"fullTime"`
	PartTime   bool `json:"partTime"`
	OnDemand   bool `json:"onDemand"`
	Negotiable bool `json:"negotiable"`
}

// Any reports whether at least one flag is set.
func (e EmploymentTypes) Any() bool {
	return e.FullTime || e.PartTime || e.OnDemand || e.Negotiable
}

// Toggle returns a copy with the named flag flipped.
func (e EmploymentTypes) Toggle(kind EmploymentKind) (EmploymentTypes, error) {
	switch kind {
	case EmploymentFullTime:
		e.FullTime = !e.FullTime
	case EmploymentPartTime:
		e.PartTime = !e.PartTime
	case EmploymentOnDemand:
		e.OnDemand = !e.OnDemand
	case EmploymentNegotiable:
		e.Negotiable = !e.Negotiable
	default:
		return e, errors.Errorf("unknown employment type %q", kind)
	}
	return e, nil
}

// Draft is the in-progress job offer held by the form.
type Draft struct {
	Title            string          `json:"jobTitle"`
	Description      string          `json:"jobDescription"`
	Location         string          `json:"location"`
	Requirements     string          `json:"requirements"`
	Education        string          `json:"education"`
	Experience       string          `json:"experience"`
	EmploymentTypes  EmploymentTypes `json:"employmentTypes"`
	Schedules        []string        `json:"selectedSchedules"`
	PaymentType      PaymentType     `json:"paymentType"`
	SalaryAmount     string          `json:"salaryAmount"`
	PaymentFrequency Frequency       `json:"paymentFrequency"`
	SalaryNegotiable bool            `json:"salaryNegotiable"`
	HiringMultiple   bool            `json:"hiringMultiple"`
	Deadline         string          `json:"deadline"`
}

// Equal reports whether d and o hold the same values. A nil and an empty
// schedule list are equal.
func (d Draft) Equal(o Draft) bool {
	return d.Title == o.Title &&
		d.Description == o.Description &&
		d.Location == o.Location &&
		d.Requirements == o.Requirements &&
		d.Education == o.Education &&
		d.Experience == o.Experience &&
		d.EmploymentTypes == o.EmploymentTypes &&
		slices.Equal(d.Schedules, o.Schedules) &&
		d.PaymentType == o.PaymentType &&
		d.SalaryAmount == o.SalaryAmount &&
		d.PaymentFrequency == o.PaymentFrequency &&
		d.SalaryNegotiable == o.SalaryNegotiable &&
		d.HiringMultiple == o.HiringMultiple &&
		d.Deadline == o.Deadline
}

// ValidationErrors maps a field name to a human-readable message.
// A nil or empty map means the draft is submit-ready.
type ValidationErrors map[string]string

// ParseFrequency converts a raw string to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	switch f {
	case FrequencyHourly, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	}
	return "", errors.Errorf("unknown payment frequency %q", s)
}

// ParsePaymentType converts a raw string to a PaymentType.
func ParsePaymentType(s string) (PaymentType, error) {
	p := PaymentType(s)
	switch p {
	case PaymentHourly, PaymentCustom:
		return p, nil
	}
	return "", errors.Errorf("unknown payment type %q", s)
}

// IsSchedule reports whether s belongs to the schedule catalog.
func IsSchedule(s string) bool {
	for _, v := range Schedules {
		if v == s {
			return true
		}
	}
	return false
}

// IsEducation reports whether s belongs to EducationOptions.
func IsEducation(s string) bool {
	for _, v := range EducationOptions {
		if v == s {
			return true
		}
	}
	return false
}
