package offer_test

import (
	"regexp"
	"testing"
	"time"

	"jobmate/posting-service/internal/offer"
)

// ── ContractType ───────────────────────────────────────────────────────────

func TestContractType_FirstSelectedWins(t *testing.T) {
	cases := []struct {
		in   offer.EmploymentTypes
		want string
	}{
		{offer.EmploymentTypes{FullTime: true, PartTime: true}, "Full-time"},
		{offer.EmploymentTypes{PartTime: true, OnDemand: true}, "Part-time"},
		{offer.EmploymentTypes{OnDemand: true, Negotiable: true}, "Contract"},
		{offer.EmploymentTypes{Negotiable: true}, "Negotiable"},
		{offer.EmploymentTypes{}, "Full-time"},
	}
	for _, c := range cases {
		if got := offer.ContractType(c.in); got != c.want {
			t.Errorf("ContractType(%+v) = %q, want %q", c.in, got, c.want)
		}
	}
}

// ── ToPayload ──────────────────────────────────────────────────────────────

func TestToPayload(t *testing.T) {
	d := offer.Draft{
		Title:           "  Backend Developer ",
		Description:     "<b>Build</b> APIs<br>and services",
		Location:        " Tunis ",
		Requirements:    "Go, , PostgreSQL ,Docker,",
		Education:       "Bachelor's Degree",
		Experience:      " 3 years ",
		EmploymentTypes: offer.EmploymentTypes{OnDemand: true},
		SalaryAmount:    "48,000.50",
		Deadline:        "2030-01-01",
	}

	p := offer.ToPayload(d)

	if p.Title != "Backend Developer" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Description != "Build APIsand services" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Location != "Tunis" || p.Experience != "3 years" {
		t.Errorf("Location/Experience not trimmed: %q / %q", p.Location, p.Experience)
	}
	want := []string{"Go", "PostgreSQL", "Docker"}
	if len(p.Requirements) != len(want) {
		t.Fatalf("Requirements = %v, want %v", p.Requirements, want)
	}
	for i := range want {
		if p.Requirements[i] != want[i] {
			t.Errorf("Requirements[%d] = %q, want %q", i, p.Requirements[i], want[i])
		}
	}
	if p.ContractType != "Contract" {
		t.Errorf("ContractType = %q", p.ContractType)
	}
	if p.Salary != 48000.50 {
		t.Errorf("Salary = %v", p.Salary)
	}
}

func TestToPayload_EmptyRequirementsIsEmptySlice(t *testing.T) {
	p := offer.ToPayload(offer.Draft{SalaryAmount: "1"})
	if p.Requirements == nil || len(p.Requirements) != 0 {
		t.Errorf("Requirements = %#v, want empty non-nil slice", p.Requirements)
	}
}

// ── ParseSalary ────────────────────────────────────────────────────────────

func TestParseSalary(t *testing.T) {
	valid := map[string]float64{"35,000": 35000, "1,234,567.89": 1234567.89, " 12 ": 12, "0": 0}
	for in, want := range valid {
		got, err := offer.ParseSalary(in)
		if err != nil {
			t.Errorf("ParseSalary(%q) unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseSalary(%q) = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "abc", "12k", "NaN", "inf", "-inf", "Infinity", "+Inf", "1e400"} {
		if _, err := offer.ParseSalary(in); err == nil {
			t.Errorf("ParseSalary(%q) expected error, got nil", in)
		}
	}
}

// ── NewPendingOffer ────────────────────────────────────────────────────────

func TestNewPendingOffer(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	p := offer.NewPendingOffer(offer.Payload{Title: "x"}, now)

	if !regexp.MustCompile(`^job_1700000000123_[0-9a-f]{9}$`).MatchString(p.ID) {
		t.Errorf("ID = %q, unexpected format", p.ID)
	}
	if p.Timestamp != 1700000000123 {
		t.Errorf("Timestamp = %d", p.Timestamp)
	}
	if p.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", p.Attempts)
	}
	if p.Data.Title != "x" {
		t.Errorf("Data not carried over: %+v", p.Data)
	}

	other := offer.NewPendingOffer(offer.Payload{}, now)
	if other.ID == p.ID {
		t.Errorf("two offers created at the same instant share id %q", p.ID)
	}
}
