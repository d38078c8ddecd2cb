// Package extract turns free text from an imported document into a fully
// populated offer.Draft using fixed keyword and pattern scans.
//
// The engine never fails: every field it cannot locate falls back to a
// fixed default. Location, education, experience and deadline are always
// defaulted.
package extract

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"jobmate/posting-service/internal/offer"
)

// Fallback values used when a field cannot be located.
const (
	DefaultTitle        = "Extracted Job Position"
	DefaultLocation     = "Remote"
	DefaultRequirements = "Experience with relevant technologies"
	DefaultEducation    = "Bachelor's Degree"
	DefaultExperience   = "2 years"
	DefaultSalary       = "35,000"
	DefaultFrequency    = offer.FrequencyYearly

	deadlineOffset = 30 * 24 * time.Hour
)

const (
	titleScanLines       = 5
	titleMaxLen          = 100
	descriptionLines     = 5
	requirementLines     = 4
	sentenceFallbackMin  = 100
	sentenceMinLen       = 20
	sentencesKept        = 3
	prefixFallbackLen    = 200
	descriptionLineBreak = "<br>"
)

// Salary patterns are tried in order (yearly, monthly, hourly); the first
// one matching anywhere in the text fixes both amount and frequency.
// Separators also accept U+00A0, common in text pasted from documents.
var salaryPatterns = []*regexp.Regexp{
	salaryPattern(`year|yearly|annual|annually`),
	salaryPattern(`month|monthly`),
	salaryPattern(`hour|hourly`),
}

func salaryPattern(units string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\$?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)[\s\x{00A0}]*(?:per[\s\x{00A0}]+)?(` + units + `)`)
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Extractor runs the extraction engine against a clock.
type Extractor struct {
	// Now supplies the current time for the default deadline.
	Now func() time.Time
}

// New returns an Extractor using the wall clock.
func New() *Extractor {
	return &Extractor{Now: time.Now}
}

// Extract runs the engine with the wall clock.
func Extract(raw string) offer.Draft {
	return New().Extract(raw)
}

// Extract converts raw text into a draft. It is deterministic for a given
// text and clock.
func (e *Extractor) Extract(raw string) offer.Draft {
	now := time.Now
	if e != nil && e.Now != nil {
		now = e.Now
	}

	lines := splitLines(raw)
	lower := strings.ToLower(raw)

	amount, frequency := extractSalary(raw)

	return offer.Draft{
		Title:        orDefault(extractTitle(lines), DefaultTitle),
		Description:  extractDescription(raw, lines),
		Location:     DefaultLocation,
		Requirements: orDefault(extractRequirements(lines), DefaultRequirements),
		Education:    DefaultEducation,
		Experience:   DefaultExperience,
		EmploymentTypes: offer.EmploymentTypes{
			FullTime:   containsAny(lower, fullTimeTerms),
			PartTime:   containsAny(lower, partTimeTerms),
			OnDemand:   containsAny(lower, onDemandTerms),
			Negotiable: containsAny(lower, negotiableTerms),
		},
		Schedules:        extractSchedules(lower),
		PaymentType:      offer.PaymentCustom,
		SalaryAmount:     amount,
		PaymentFrequency: frequency,
		SalaryNegotiable: strings.Contains(lower, "negotiable"),
		HiringMultiple:   containsAny(lower, multipleHireTerms),
		Deadline:         now().UTC().Add(deadlineOffset).Format("2006-01-02"),
	}
}

// splitLines splits on newlines, trims each line and drops empty ones.
func splitLines(raw string) []string {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// extractTitle scans the first lines for a title keyword. A keyword line
// ends the scan whether or not it carries a colon. The first line is kept
// as a candidate when it is short enough.
func extractTitle(lines []string) string {
	title := ""
	for i := 0; i < len(lines) && i < titleScanLines; i++ {
		if containsAny(strings.ToLower(lines[i]), titleKeywords) {
			if idx := strings.Index(lines[i], ":"); idx != -1 {
				title = strings.TrimSpace(lines[i][idx+1:])
			}
			break
		}
		if i == 0 && utf8.RuneCountInString(lines[i]) < titleMaxLen {
			title = lines[i]
		}
	}
	return title
}

func extractDescription(raw string, lines []string) string {
	// A keyword on the last line has nothing after it and is skipped.
	if i := findLine(lines, 0, len(lines)-1, descriptionKeywords); i != -1 {
		end := min(i+1+descriptionLines, len(lines))
		return strings.Join(lines[i+1:end], descriptionLineBreak)
	}

	if utf8.RuneCountInString(raw) > sentenceFallbackMin {
		var kept []string
		for _, s := range sentenceSplit.Split(raw, -1) {
			if utf8.RuneCountInString(strings.TrimSpace(s)) > sentenceMinLen {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			desc := strings.TrimSpace(strings.Join(kept[:min(sentencesKept, len(kept))], ". "))
			if !strings.HasSuffix(desc, ".") {
				desc += "."
			}
			return desc
		}
	}

	prefix := []rune(raw)
	if len(prefix) > prefixFallbackLen {
		prefix = prefix[:prefixFallbackLen]
	}
	desc := strings.TrimSpace(string(prefix))
	if utf8.RuneCountInString(desc) == prefixFallbackLen {
		desc += "..."
	}
	return desc
}

func extractRequirements(lines []string) string {
	i := findLine(lines, 0, len(lines)-1, requirementKeywords)
	if i == -1 {
		return ""
	}
	end := min(i+1+requirementLines, len(lines))
	joined := strings.Join(lines[i+1:end], ", ")
	joined = strings.NewReplacer("•", "", "-", "").Replace(joined)
	return strings.TrimSpace(joined)
}

// extractSchedules tests the catalog in fixed order, so the result order
// never depends on where the terms appear in the text.
func extractSchedules(lower string) []string {
	schedules := make([]string, 0, len(offer.Schedules))
	if containsAny(lower, dayShiftTerms) {
		schedules = append(schedules, offer.ScheduleDay)
	}
	if containsAny(lower, nightShiftTerms) {
		schedules = append(schedules, offer.ScheduleNight)
	}
	if containsAny(lower, weekendTerms) {
		schedules = append(schedules, offer.ScheduleWeekend)
	}
	return schedules
}

func extractSalary(raw string) (string, offer.Frequency) {
	for _, p := range salaryPatterns {
		m := p.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		word := strings.ToLower(m[2])
		frequency := DefaultFrequency
		switch {
		case strings.Contains(word, "hour"):
			frequency = offer.FrequencyHourly
		case strings.Contains(word, "month"):
			frequency = offer.FrequencyMonthly
		case strings.Contains(word, "year"), strings.Contains(word, "annual"):
			frequency = offer.FrequencyYearly
		}
		return m[1], frequency
	}
	return DefaultSalary, DefaultFrequency
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
