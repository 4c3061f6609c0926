package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-agent/internal/models"
)

// Session is the server-side state of one page view.
type Session struct {
	ID string

	mu       sync.Mutex
	profile  models.Profile
	params   models.SearchParams
	jobs     []models.Job
	apps     []models.Application
	stats    models.Stats
	running  bool
	runID    string
	timers   []*time.Timer
	lastSeen time.Time
}

// SessionView is a copy of a session's state, safe to hand to handlers.
type SessionView struct {
	ID           string               `json:"id"`
	Profile      models.Profile       `json:"profile"`
	Params       models.SearchParams  `json:"search"`
	Jobs         []models.Job         `json:"jobs"`
	Applications []models.Application `json:"applications"`
	Stats        models.Stats         `json:"stats"`
	Running      bool                 `json:"running"`
	CanRun       bool                 `json:"can_run"`
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:       uuid.NewString(),
		profile:  models.NewProfile(),
		params:   models.DefaultSearchParams(),
		jobs:     []models.Job{},
		apps:     []models.Application{},
		lastSeen: now,
	}
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionView{
		ID:           s.ID,
		Profile:      s.profile.Clone(),
		Params:       s.params,
		Jobs:         append([]models.Job{}, s.jobs...),
		Applications: append([]models.Application{}, s.apps...),
		Stats:        s.stats,
		Running:      s.running,
		CanRun:       !s.running && CanRun(s.profile, s.params),
	}
}

func (s *Session) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// ReplaceProfile swaps in p wholesale. Nil lists are normalized to empty ones.
func (s *Session) ReplaceProfile(p models.Profile) {
	clean := p.Clone()
	s.mu.Lock()
	s.profile = clean
	s.mu.Unlock()
}

// EditProfile applies fn to the profile under the session lock and returns the result.
func (s *Session) EditProfile(fn func(p *models.Profile) error) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.profile); err != nil {
		return models.Profile{}, err
	}
	return s.profile.Clone(), nil
}

func (s *Session) Params() models.SearchParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

func (s *Session) ReplaceParams(params models.SearchParams) {
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

type SessionService struct {
	Pipeline *PipelineService
	Now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(pipeline *PipelineService) *SessionService {
	return &SessionService{
		Pipeline: pipeline,
		Now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

func (s *SessionService) Create() *Session {
	sess := newSession(s.Now())
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	slog.Info("session created", "session_id", sess.ID)
	return sess
}

// Get looks up a session and marks it as seen.
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	sess.touch(s.Now())
	return sess, nil
}

// Delete removes a session and cancels any pending run callbacks.
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	s.Pipeline.Stop(sess)
	slog.Info("session deleted", "session_id", id)
	return nil
}

// EvictIdle deletes sessions not seen for longer than ttl and returns how many were removed.
func (s *SessionService) EvictIdle(ttl time.Duration) int {
	now := s.Now()
	var expired []*Session

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idleSince(now) > ttl {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		s.Pipeline.Stop(sess)
		slog.Info("session evicted", "session_id", sess.ID)
	}
	return len(expired)
}

func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CloseAll stops every session's timers. Used on shutdown.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	all := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range all {
		s.Pipeline.Stop(sess)
	}
}
