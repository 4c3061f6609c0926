package services

import (
	"math/rand"
	"time"

	"github.com/justsurfingit/job-agent/internal/models"
)

// successThreshold: a draw above it is a submitted application, so success is ~80%.
const successThreshold = 0.2

// Rand is the random source for outcome draws.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// ApplicationSimulator turns search results into simulated applications.
type ApplicationSimulator struct {
	Rand Rand
	Now  func() time.Time
}

// NewApplicationSimulator returns a simulator backed by the unseeded global source.
func NewApplicationSimulator() *ApplicationSimulator {
	return &ApplicationSimulator{
		Rand: globalRand{},
		Now:  time.Now,
	}
}

// Apply takes the first maxApplications jobs in source order and draws an outcome for each.
func (s *ApplicationSimulator) Apply(p models.Profile, jobs []models.Job, maxApplications int) []models.Application {
	n := min(max(maxApplications, 0), len(jobs))
	apps := make([]models.Application, 0, n)
	for _, job := range jobs[:n] {
		status := models.StatusPending
		if s.Rand.Float64() > successThreshold {
			status = models.StatusSuccess
		}
		apps = append(apps, models.Application{
			Job:                 job,
			Status:              status,
			AppliedAt:           s.Now().UTC(),
			CoverLetter:         GenerateCoverLetter(p, job),
			ResumeCustomization: GenerateResumeCustomization(job),
		})
	}
	return apps
}
