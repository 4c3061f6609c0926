package models

import (
	"encoding/json"
	"math"
	"time"
)

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Education struct {
	School   string `json:"school"`
	Degree   string `json:"degree"`
	Field    string `json:"field"`
	Duration string `json:"duration"`
}

type Preferences struct {
	SalaryMin string   `json:"salary_min"`
	RemoteOK  bool     `json:"remote_ok"`
	Locations []string `json:"locations"`
}

// Profile is the candidate data entered for a session.
type Profile struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	LinkedIn    string       `json:"linkedin"`
	GitHub      string       `json:"github"`
	Skills      []string     `json:"skills"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
	Preferences Preferences  `json:"preferences"`
}

// NewProfile returns an empty profile with non-nil lists so it renders as [] rather than null.
func NewProfile() Profile {
	return Profile{
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
		Preferences: Preferences{
			Locations: []string{},
		},
	}
}

// Clone returns a deep copy. Runs work on a snapshot so later edits don't leak into generated text.
func (p Profile) Clone() Profile {
	out := p
	out.Skills = append([]string{}, p.Skills...)
	out.Experience = append([]Experience{}, p.Experience...)
	out.Education = append([]Education{}, p.Education...)
	out.Preferences.Locations = append([]string{}, p.Preferences.Locations...)
	return out
}

type SearchParams struct {
	Keywords        string `json:"keywords"`
	Location        string `json:"location"`
	MaxApplications int    `json:"max_applications"`
	AutoSubmit      bool   `json:"auto_submit"`
}

func DefaultSearchParams() SearchParams {
	return SearchParams{MaxApplications: 10}
}

type Job struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	MatchScore   int    `json:"match_score"`
	Priority     string `json:"priority"`
	URL          string `json:"url"`
}

const (
	StatusSuccess = "success"
	StatusPending = "pending"
)

// Application is a Job with the simulated outcome of applying to it.
type Application struct {
	Job
	Status              string    `json:"status"`
	AppliedAt           time.Time `json:"applied_at"`
	CoverLetter         string    `json:"cover_letter"`
	ResumeCustomization string    `json:"resume_customization"`
}

// StatusLabel is the display text for the application status.
func (a Application) StatusLabel() string {
	if a.Status == StatusSuccess {
		return "Submitted"
	}
	return "Pending"
}

// Stats holds the counters for the latest run. SuccessRate is NaN when no applications were produced.
type Stats struct {
	TotalJobs   int     `json:"total_jobs"`
	Applied     int     `json:"applied"`
	Pending     int     `json:"pending"`
	SuccessRate float64 `json:"-"`
}

// MarshalJSON writes a NaN success rate as null.
func (s Stats) MarshalJSON() ([]byte, error) {
	var rate *float64
	if !math.IsNaN(s.SuccessRate) {
		r := s.SuccessRate
		rate = &r
	}
	return json.Marshal(struct {
		TotalJobs   int      `json:"total_jobs"`
		Applied     int      `json:"applied"`
		Pending     int      `json:"pending"`
		SuccessRate *float64 `json:"success_rate"`
	}{s.TotalJobs, s.Applied, s.Pending, rate})
}

const (
	EventRunStarted            = "RUN_STARTED"
	EventJobsFound             = "JOBS_FOUND"
	EventApplicationsSubmitted = "APPLICATIONS_SUBMITTED"
	EventRunAborted            = "RUN_ABORTED"
)

// RunEvent is one row of the pipeline journal.
type RunEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	SessionID string    `gorm:"index;not null" json:"session_id"`
	RunID     string    `gorm:"index" json:"run_id"`
	EventType string    `json:"event_type"`
	Details   string    `gorm:"type:text" json:"details"`
}
