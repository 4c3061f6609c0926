package services

import (
	"context"
	"sync"
	"time"

	"github.com/justsurfingit/job-agent/internal/models"
)

// seqRand replays vals in a loop.
type seqRand struct {
	mu   sync.Mutex
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testSimulator(vals ...float64) *ApplicationSimulator {
	return &ApplicationSimulator{
		Rand: &seqRand{vals: vals},
		Now:  func() time.Time { return fixedTime },
	}
}

type memJournal struct {
	mu     sync.Mutex
	events []models.RunEvent
}

func (j *memJournal) Record(_ context.Context, e models.RunEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, e)
	return nil
}

func (j *memJournal) Recent(_ context.Context, sessionID string, limit int) ([]models.RunEvent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []models.RunEvent
	for i := len(j.events) - 1; i >= 0 && len(out) < limit; i-- {
		if j.events[i].SessionID == sessionID {
			out = append(out, j.events[i])
		}
	}
	return out, nil
}

func (j *memJournal) types() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, 0, len(j.events))
	for _, e := range j.events {
		out = append(out, e.EventType)
	}
	return out
}

func readySession(now time.Time) *Session {
	sess := newSession(now)
	sess.profile.Name = "Ada Lovelace"
	sess.params.Keywords = "developer"
	return sess
}
