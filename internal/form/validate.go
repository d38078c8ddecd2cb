package form

import (
	"strings"
	"unicode/utf8"

	"jobmate/posting-service/internal/offer"
)

const (
	minTitleLength      = 3
	minDescriptionWords = 10
)

// Validate checks d against every submission rule. The result is empty
// if and only if d can be submitted.
func Validate(d offer.Draft) offer.ValidationErrors {
	errs := offer.ValidationErrors{}

	switch title := strings.TrimSpace(d.Title); {
	case title == "":
		errs["jobTitle"] = "Job title is required"
	case utf8.RuneCountInString(title) < minTitleLength:
		errs["jobTitle"] = "Job title must be at least 3 characters"
	}

	switch desc := strings.TrimSpace(d.Description); {
	case desc == "" || desc == "<br>":
		errs["jobDescription"] = "Job description is required"
	case WordCount(d.Description) < minDescriptionWords:
		errs["jobDescription"] = "Job description must be at least 10 words"
	}

	required := []struct {
		field, value, msg string
	}{
		{"location", d.Location, "Location is required"},
		{"requirements", d.Requirements, "Requirements are required"},
		{"education", d.Education, "Education level is required"},
		{"experience", d.Experience, "Experience is required"},
		{"deadline", d.Deadline, "Application deadline is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.msg
		}
	}

	if !d.EmploymentTypes.Any() {
		errs["employmentTypes"] = "At least one employment type must be selected"
	}
	if len(d.Schedules) == 0 {
		errs["selectedSchedules"] = "At least one working schedule must be selected"
	}

	if strings.TrimSpace(d.SalaryAmount) == "" {
		errs["salaryAmount"] = "Salary amount is required"
	} else if _, err := offer.ParseSalary(d.SalaryAmount); err != nil {
		errs["salaryAmount"] = "Please enter a valid salary amount"
	}

	return errs
}
