package extract

import "strings"

// Keyword sets scanned line by line.
var (
	titleKeywords       = []string{"job title", "position", "role", "vacancy", "opening"}
	descriptionKeywords = []string{"description", "responsibilities", "duties", "requirements", "about"}
	requirementKeywords = []string{"requirements", "skills", "technologies", "qualifications"}
)

// Keyword sets scanned over the whole lowercased text.
var (
	fullTimeTerms   = []string{"full-time", "full time"}
	partTimeTerms   = []string{"part-time", "part time"}
	onDemandTerms   = []string{"on-demand", "freelance", "contract"}
	negotiableTerms = []string{"negotiable", "flexible"}

	dayShiftTerms   = []string{"day shift", "morning", "daytime"}
	nightShiftTerms = []string{"night shift", "evening", "nighttime"}
	weekendTerms    = []string{"weekend", "saturday", "sunday"}

	multipleHireTerms = []string{"multiple", "several", "many"}
)

// containsAny returns true if any term appears anywhere in lower.
// lower must already be lowercased; terms are compared as given.
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// findLine returns the index of the first line whose lowercased form
// contains one of terms, searching lines[from:to]. It returns -1 on no hit.
func findLine(lines []string, from, to int, terms []string) int {
	if to > len(lines) {
		to = len(lines)
	}
	for i := from; i < to; i++ {
		if containsAny(strings.ToLower(lines[i]), terms) {
			return i
		}
	}
	return -1
}
