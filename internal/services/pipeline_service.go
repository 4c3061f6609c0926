package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-agent/internal/models"
)

const journalTimeout = 5 * time.Second

// PipelineService drives the simulated search-and-apply run for a session.
type PipelineService struct {
	Source      JobSource
	Simulator   *ApplicationSimulator
	Journal     Journal
	SearchDelay time.Duration
	ApplyDelay  time.Duration
}

func NewPipelineService(source JobSource, sim *ApplicationSimulator, journal Journal, searchDelay, applyDelay time.Duration) *PipelineService {
	if journal == nil {
		journal = NopJournal{}
	}
	return &PipelineService{
		Source:      source,
		Simulator:   sim,
		Journal:     journal,
		SearchDelay: searchDelay,
		ApplyDelay:  applyDelay,
	}
}

// Start begins a run and returns its id. The search and apply callbacks are scheduled
// independently from now; neither waits for the other.
func (p *PipelineService) Start(sess *Session) (string, error) {
	sess.mu.Lock()
	if sess.running {
		sess.mu.Unlock()
		return "", ErrRunInProgress
	}
	if !CanRun(sess.profile, sess.params) {
		sess.mu.Unlock()
		return "", ErrNotReady
	}

	profile := sess.profile.Clone()
	params := sess.params
	runID := uuid.NewString()

	sess.running = true
	sess.runID = runID
	sess.timers = []*time.Timer{
		time.AfterFunc(p.SearchDelay, func() { p.finishSearch(sess, runID, params) }),
		time.AfterFunc(p.ApplyDelay, func() { p.finishApply(sess, runID, profile, params) }),
	}
	sess.mu.Unlock()

	slog.Info("run started", "session_id", sess.ID, "run_id", runID, "keywords", params.Keywords)
	p.record(sess.ID, runID, models.EventRunStarted,
		fmt.Sprintf("keywords=%q location=%q max_applications=%d", params.Keywords, params.Location, params.MaxApplications))
	return runID, nil
}

func (p *PipelineService) finishSearch(sess *Session, runID string, params models.SearchParams) {
	jobs := p.Source.Search(params)

	sess.mu.Lock()
	if sess.runID != runID {
		sess.mu.Unlock()
		return
	}
	sess.jobs = jobs
	sess.stats.TotalJobs = len(jobs)
	sess.mu.Unlock()

	slog.Info("jobs found", "session_id", sess.ID, "run_id", runID, "count", len(jobs))
	p.record(sess.ID, runID, models.EventJobsFound, fmt.Sprintf("%d jobs", len(jobs)))
}

// finishApply searches again rather than reading the session's job list, so it does
// not depend on the search callback having fired.
func (p *PipelineService) finishApply(sess *Session, runID string, profile models.Profile, params models.SearchParams) {
	jobs := p.Source.Search(params)
	apps := p.Simulator.Apply(profile, jobs, params.MaxApplications)
	stats := ComputeStats(len(jobs), apps)

	sess.mu.Lock()
	if sess.runID != runID {
		sess.mu.Unlock()
		return
	}
	sess.apps = apps
	sess.stats = stats
	sess.running = false
	sess.timers = nil
	sess.mu.Unlock()

	slog.Info("applications submitted", "session_id", sess.ID, "run_id", runID,
		"applied", stats.Applied, "pending", stats.Pending)
	p.record(sess.ID, runID, models.EventApplicationsSubmitted,
		fmt.Sprintf("applied=%d pending=%d", stats.Applied, stats.Pending))
}

// Stop cancels pending callbacks. A run that was in progress is marked aborted.
func (p *PipelineService) Stop(sess *Session) {
	sess.mu.Lock()
	for _, t := range sess.timers {
		t.Stop()
	}
	wasRunning := sess.running
	runID := sess.runID
	sess.timers = nil
	sess.running = false
	sess.runID = ""
	sess.mu.Unlock()

	if wasRunning {
		slog.Info("run aborted", "session_id", sess.ID, "run_id", runID)
		p.record(sess.ID, runID, models.EventRunAborted, "session closed")
	}
}

// Running reports whether sess has a run in progress.
func (p *PipelineService) Running(sess *Session) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.running
}

func (p *PipelineService) record(sessionID, runID, eventType, details string) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	err := p.Journal.Record(ctx, models.RunEvent{
		SessionID: sessionID,
		RunID:     runID,
		EventType: eventType,
		Details:   details,
	})
	if err != nil {
		slog.Warn("journal write failed", "session_id", sessionID, "run_id", runID, "error", err)
	}
}
