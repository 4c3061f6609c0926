package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"github.com/justsurfingit/job-agent/internal/database"
	"github.com/justsurfingit/job-agent/internal/models"
)

func newMockJournal(t *testing.T) (*JournalService, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	return NewJournalService(db), mock
}

func TestJournalService_Record(t *testing.T) {
	journal, mock := newMockJournal(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "run_events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := journal.Record(context.Background(), models.RunEvent{
		SessionID: "sess-1",
		RunID:     "run-1",
		EventType: models.EventRunStarted,
		Details:   "keywords=\"go\"",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalService_RecordError(t *testing.T) {
	journal, mock := newMockJournal(t)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "run_events"`)).
		WillReturnError(errors.New("connection reset"))

	err := journal.Record(context.Background(), models.RunEvent{SessionID: "sess-1", EventType: models.EventJobsFound})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "record JOBS_FOUND event")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalService_Recent(t *testing.T) {
	journal, mock := newMockJournal(t)
	rows := sqlmock.NewRows([]string{"id", "created_at", "session_id", "run_id", "event_type", "details"}).
		AddRow(2, fixedTime, "sess-1", "run-1", models.EventJobsFound, "3 jobs").
		AddRow(1, fixedTime, "sess-1", "run-1", models.EventRunStarted, "")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "run_events" WHERE session_id = $1 ORDER BY id desc`)).
		WillReturnRows(rows)

	events, err := journal.Recent(context.Background(), "sess-1", 50)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint(2), events[0].ID)
	assert.Equal(t, models.EventJobsFound, events[0].EventType)
	assert.Equal(t, "3 jobs", events[0].Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPipeline_JournalFailureDoesNotFailRun(t *testing.T) {
	journal, mock := newMockJournal(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 3; i++ {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "run_events"`)).
			WillReturnError(errors.New("db down"))
	}
	p := NewPipelineService(NewMockJobSource(), testSimulator(0.9), journal, 0, 0)
	sess := readySession(fixedTime)

	_, err := p.Start(sess)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return !p.Running(sess) }, waitFor, tick)
	assert.Len(t, sess.View().Applications, 3)
}

func TestNopJournal(t *testing.T) {
	var j Journal = NopJournal{}
	require.NoError(t, j.Record(context.Background(), models.RunEvent{}))
	events, err := j.Recent(context.Background(), "x", 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
