package services

import (
	"github.com/justsurfingit/job-agent/internal/models"
)

var mockJobs = []models.Job{
	{
		ID:           1,
		Title:        "Frontend Developer",
		Company:      "TechCorp",
		Location:     "San Francisco, CA",
		Description:  "Build amazing user interfaces with React and TypeScript",
		Requirements: "3+ years React, TypeScript, CSS",
		MatchScore:   92,
		Priority:     "high",
		URL:          "https://example.com/job1",
	},
	{
		ID:           2,
		Title:        "Full Stack Engineer",
		Company:      "StartupXYZ",
		Location:     "Remote",
		Description:  "Work on both frontend and backend systems",
		Requirements: "Node.js, React, MongoDB, AWS",
		MatchScore:   85,
		Priority:     "medium",
		URL:          "https://example.com/job2",
	},
	{
		ID:           3,
		Title:        "Python Developer",
		Company:      "DataFlow Inc",
		Location:     "New York, NY",
		Description:  "Build data processing pipelines and APIs",
		Requirements: "Python, Django, PostgreSQL, Docker",
		MatchScore:   78,
		Priority:     "medium",
		URL:          "https://example.com/job3",
	},
}

// JobSource stands in for a job-board integration.
type JobSource interface {
	Search(params models.SearchParams) []models.Job
}

// MockJobSource always returns the same three postings. Params are not used for filtering.
type MockJobSource struct{}

func NewMockJobSource() *MockJobSource {
	return &MockJobSource{}
}

func (MockJobSource) Search(_ models.SearchParams) []models.Job {
	out := make([]models.Job, len(mockJobs))
	copy(out, mockJobs)
	return out
}

const (
	BandStrong = "strong"
	BandFair   = "fair"
	BandWeak   = "weak"
)

// MatchBand buckets a match score for display.
func MatchBand(score int) string {
	switch {
	case score >= 90:
		return BandStrong
	case score >= 75:
		return BandFair
	default:
		return BandWeak
	}
}
