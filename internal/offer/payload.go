package offer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Payload is the JSON body accepted by POST /offers/create on the remote API.
type Payload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Requirements []string `json:"requirements"`
	Education    string   `json:"education"`
	Experience   string   `json:"experience"`
	ContractType string   `json:"contract_type"`
	Deadline     string   `json:"deadline"`
	Salary       float64  `json:"salary"`
}

// PendingOffer is a payload that could not be confirmed by the remote API
// and waits in the offline queue.
//
// Attempts is persisted but never incremented.
type PendingOffer struct {
	ID        string  `json:"id"`
	Data      Payload `json:"data"`
	Timestamp int64   `json:"timestamp"`
	Attempts  int     `json:"attempts"`
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every markup tag from s without touching entities.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// ParseSalary removes thousands separators and parses the remainder.
func ParseSalary(amount string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(amount, ",", ""))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("salary %q is not a number", amount)
	}
	return v, nil
}

// ContractType returns the label of the first selected employment flag,
// checked in the order full-time, part-time, on-demand, negotiable.
func ContractType(e EmploymentTypes) string {
	switch {
	case e.FullTime:
		return "Full-time"
	case e.PartTime:
		return "Part-time"
	case e.OnDemand:
		return "Contract"
	case e.Negotiable:
		return "Negotiable"
	}
	return "Full-time"
}

// ToPayload converts a validated draft into the API body.
// An unparseable salary yields 0; callers validate first.
func ToPayload(d Draft) Payload {
	reqs := make([]string, 0)
	for _, r := range strings.Split(d.Requirements, ",") {
		if r = strings.TrimSpace(r); r != "" {
			reqs = append(reqs, r)
		}
	}
	salary, _ := ParseSalary(d.SalaryAmount)

	return Payload{
		Title:        strings.TrimSpace(d.Title),
		Description:  strings.TrimSpace(StripTags(d.Description)),
		Location:     strings.TrimSpace(d.Location),
		Requirements: reqs,
		Education:    strings.TrimSpace(d.Education),
		Experience:   strings.TrimSpace(d.Experience),
		ContractType: ContractType(d.EmploymentTypes),
		Deadline:     d.Deadline,
		Salary:       salary,
	}
}

// NewPendingOffer wraps p with a fresh id and creation timestamp.
// The id combines the creation time with the random tail of a UUIDv7.
func NewPendingOffer(p Payload, now time.Time) PendingOffer {
	ms := now.UnixMilli()
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	hex := strings.ReplaceAll(id.String(), "-", "")
	suffix := hex[len(hex)-9:]

	return PendingOffer{
		ID:        fmt.Sprintf("job_%d_%s", ms, suffix),
		Data:      p,
		Timestamp: ms,
		Attempts:  0,
	}
}
