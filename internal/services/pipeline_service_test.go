package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-agent/internal/models"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func TestPipelineStart_CompletesRun(t *testing.T) {
	journal := &memJournal{}
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9, 0.1), journal, 10*time.Millisecond, 30*time.Millisecond)
	sess := readySession(time.Now())
	sess.params.MaxApplications = 2

	runID, err := p.Start(sess)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.True(t, p.Running(sess))
	assert.False(t, sess.View().CanRun)

	require.Eventually(t, func() bool { return !p.Running(sess) }, waitFor, tick)

	view := sess.View()
	assert.Len(t, view.Jobs, 3)
	require.Len(t, view.Applications, 2)
	assert.Equal(t, 1, view.Applications[0].ID)
	assert.Equal(t, 2, view.Applications[1].ID)
	assert.Equal(t, models.StatusSuccess, view.Applications[0].Status)
	assert.Equal(t, models.StatusPending, view.Applications[1].Status)
	assert.Equal(t, 3, view.Stats.TotalJobs)
	assert.Equal(t, 1, view.Stats.Applied)
	assert.Equal(t, 1, view.Stats.Pending)
	assert.InDelta(t, 50.0, view.Stats.SuccessRate, 1e-9)
	assert.True(t, view.CanRun)

	require.Eventually(t, func() bool { return len(journal.types()) == 3 }, waitFor, tick)
	assert.ElementsMatch(t,
		[]string{models.EventRunStarted, models.EventJobsFound, models.EventApplicationsSubmitted},
		journal.types())
}

func TestPipelineStart_SearchPublishesBeforeApply(t *testing.T) {
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), nil, 0, time.Hour)
	sess := readySession(time.Now())

	_, err := p.Start(sess)
	require.NoError(t, err)
	t.Cleanup(func() { p.Stop(sess) })

	require.Eventually(t, func() bool { return len(sess.View().Jobs) == 3 }, waitFor, tick)
	view := sess.View()
	assert.True(t, view.Running)
	assert.Equal(t, 3, view.Stats.TotalJobs)
	assert.Empty(t, view.Applications)
}

func TestPipelineStart_ApplyDoesNotWaitForSearch(t *testing.T) {
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), nil, time.Hour, 0)
	sess := readySession(time.Now())

	_, err := p.Start(sess)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return !p.Running(sess) }, waitFor, tick)
	view := sess.View()
	assert.Len(t, view.Applications, 3)
	assert.Empty(t, view.Jobs)
	assert.Equal(t, 3, view.Stats.TotalJobs)
	p.Stop(sess)
}

func TestPipelineStart_RejectsOverlappingRun(t *testing.T) {
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), nil, time.Hour, time.Hour)
	sess := readySession(time.Now())

	_, err := p.Start(sess)
	require.NoError(t, err)
	t.Cleanup(func() { p.Stop(sess) })

	_, err = p.Start(sess)
	assert.ErrorIs(t, err, ErrRunInProgress)
}

func TestPipelineStart_RequiresNameAndKeywords(t *testing.T) {
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), nil, 0, 0)

	sess := newSession(time.Now())
	_, err := p.Start(sess)
	assert.ErrorIs(t, err, ErrNotReady)

	sess.profile.Name = "Ada"
	_, err = p.Start(sess)
	assert.ErrorIs(t, err, ErrNotReady)

	sess.profile.Name = ""
	sess.params.Keywords = "go"
	_, err = p.Start(sess)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, p.Running(sess))
}

func TestPipelineStart_UsesProfileSnapshot(t *testing.T) {
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), nil, time.Hour, 20*time.Millisecond)
	sess := readySession(time.Now())
	sess.params.MaxApplications = 1

	_, err := p.Start(sess)
	require.NoError(t, err)
	sess.ReplaceProfile(models.Profile{Name: "Someone Else"})
	sess.ReplaceParams(models.SearchParams{Keywords: "x", MaxApplications: 3})

	require.Eventually(t, func() bool { return !p.Running(sess) }, waitFor, tick)
	view := sess.View()
	require.Len(t, view.Applications, 1)
	assert.Contains(t, view.Applications[0].CoverLetter, "Best regards,\nAda Lovelace")
	p.Stop(sess)
}

func TestPipelineStop_AbortsRun(t *testing.T) {
	journal := &memJournal{}
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), journal, time.Hour, time.Hour)
	sess := readySession(time.Now())

	runID, err := p.Start(sess)
	require.NoError(t, err)

	p.Stop(sess)

	assert.False(t, p.Running(sess))
	assert.Equal(t, []string{models.EventRunStarted, models.EventRunAborted}, journal.types())

	// A callback that was already in flight when Stop ran must not publish.
	p.finishApply(sess, runID, sess.Profile(), sess.Params())
	p.finishSearch(sess, runID, sess.Params())
	view := sess.View()
	assert.Empty(t, view.Applications)
	assert.Empty(t, view.Jobs)
}

func TestPipelineStop_IdleSessionIsQuiet(t *testing.T) {
	journal := &memJournal{}
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), journal, 0, 0)

	p.Stop(readySession(time.Now()))

	assert.Empty(t, journal.types())
}

func TestPipeline_RunsReplaceResultsWholesale(t *testing.T) {
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), nil, 0, 0)
	sess := readySession(time.Now())
	sess.params.MaxApplications = 3

	_, err := p.Start(sess)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return !p.Running(sess) && len(sess.View().Applications) == 3 }, waitFor, tick)

	sess.ReplaceParams(models.SearchParams{Keywords: "developer", MaxApplications: 1})
	_, err = p.Start(sess)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		view := sess.View()
		return !view.Running && len(view.Applications) == 1 && len(view.Jobs) == 3
	}, waitFor, tick)
}
