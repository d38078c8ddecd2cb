package extract

import "jobmate/posting-service/internal/offer"

// SampleFilename is the name reported for the built-in sample document.
const SampleFilename = "sample-job-posting.txt"

// SampleText is a representative posting used to try the import flow
// without uploading a file.
const SampleText = `Job Title: Senior Backend Developer

Job Description:
We are looking for a skilled Senior Backend Developer to join our dynamic team. The ideal candidate will have extensive experience with Flask, PostgreSQL, and modern backend technologies.

Location: Tunis, Tunisia

Requirements:
- Flask and Python
- PostgreSQL and Supabase
- REST API development
- Git version control
- Docker containerization

Education: Bachelor's Degree in Computer Science
Experience: 3+ years in backend development

Responsibilities:
- Develop and maintain REST APIs using Flask
- Design and optimize database schemas
- Collaborate with frontend developers
- Write clean, maintainable, and well-documented code

Employment Type: Full-time
Schedule: Day shift, flexible hours
Salary: 48,000 per year
Application Deadline: 2025-12-30
Hiring: We are hiring multiple candidates for this role`

// ExtractSample runs e over SampleText.
func (e *Extractor) ExtractSample() offer.Draft {
	return e.Extract(SampleText)
}
