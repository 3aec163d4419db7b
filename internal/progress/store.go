package progress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// ErrNotFound is returned by a Backend when the key has no value.
var ErrNotFound = errors.New("key not found")

// Backend is a key-value store holding the serialized state.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Attempt is one recorded check of an exercise.
type Attempt struct {
	SchedaID   string
	ExerciseID string
	Score      int
	Total      int
	OpenEnded  bool
	At         time.Time
}

// AttemptLog receives every recorded result in addition to the state.
type AttemptLog interface {
	Append(ctx context.Context, a Attempt) error
}

// Store is the single owner of the progress state. It keeps the state in
// memory and writes it through to the backend after every change. Failed
// writes are logged and otherwise ignored, so the in-memory state stays
// authoritative for the current session.
type Store struct {
	backend  Backend
	log      *slog.Logger
	now      func() time.Time
	attempts AttemptLog

	mu    sync.Mutex
	state *State
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock sets the time source for attempt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithAttemptLog appends every recorded result to log.
func WithAttemptLog(log AttemptLog) Option {
	return func(s *Store) { s.attempts = log }
}

// Open loads the state from backend. Missing, unreadable or
// version-mismatched state falls back to the default state.
func Open(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	data, err := backend.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, ErrNotFound):
		s.state = DefaultState()
	case err != nil:
		s.log.Warn("could not read progress, starting fresh", "key", StorageKey, "error", err)
		s.state = DefaultState()
	default:
		st, err := decodeState(data)
		if err != nil {
			s.log.Warn("discarding unreadable progress", "key", StorageKey, "error", err)
		}
		s.state = st
	}
	return s
}

// RecordExerciseResult stores the latest score of a gradable exercise,
// incrementing its attempt counter, and marks the scheda as last active.
func (s *Store) RecordExerciseResult(ctx context.Context, schedaID, exerciseID string, score, total int) ExerciseResult {
	s.mu.Lock()
	now := s.now()
	sc := s.state.scheda(schedaID)
	attempts := 1
	if prev, ok := sc.Exercises[exerciseID]; ok && prev.Attempts > 0 {
		attempts = prev.Attempts + 1
	}
	res := ExerciseResult{
		Score:       score,
		Total:       total,
		Attempts:    attempts,
		LastAttempt: now,
	}
	sc.Exercises[exerciseID] = res
	s.setLastActive(schedaID)
	s.saveLocked(ctx)
	s.mu.Unlock()

	s.appendAttempt(ctx, Attempt{
		SchedaID:   schedaID,
		ExerciseID: exerciseID,
		Score:      score,
		Total:      total,
		At:         now,
	})
	return res
}

// RecordOpenEndedDone marks an open-ended exercise as attempted.
func (s *Store) RecordOpenEndedDone(ctx context.Context, schedaID, exerciseID string) {
	s.mu.Lock()
	now := s.now()
	s.state.scheda(schedaID).Exercises[exerciseID] = ExerciseResult{
		Attempted:   true,
		LastAttempt: now,
	}
	s.setLastActive(schedaID)
	s.saveLocked(ctx)
	s.mu.Unlock()

	s.appendAttempt(ctx, Attempt{
		SchedaID:   schedaID,
		ExerciseID: exerciseID,
		OpenEnded:  true,
		At:         now,
	})
}

// RecordTheoryViewed marks the theory of a scheda as read.
func (s *Store) RecordTheoryViewed(ctx context.Context, schedaID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.scheda(schedaID).TheoryViewed = true
	s.setLastActive(schedaID)
	s.saveLocked(ctx)
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// UpdateSettings merges patch into the settings and returns the result.
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.StrictAccents != nil {
		s.state.Settings.StrictAccents = *patch.StrictAccents
	}
	if patch.DarkMode != nil {
		s.state.Settings.DarkMode = *patch.DarkMode
	}
	s.saveLocked(ctx)
	return s.state.Settings
}

// LastActive returns the scheda most recently worked on.
func (s *Store) LastActive() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.LastActive == nil {
		return "", false
	}
	return *s.state.LastActive, true
}

// SchedaState returns a copy of the progress within a scheda.
func (s *Store) SchedaState(schedaID string) (SchedaState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.state.Schede[schedaID]
	if !ok {
		return SchedaState{}, false
	}
	return sc.clone(), true
}

// ExerciseResult returns the stored result of one exercise.
func (s *Store) ExerciseResult(schedaID, exerciseID string) (ExerciseResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.state.Schede[schedaID]
	if !ok {
		return ExerciseResult{}, false
	}
	res, ok := sc.Exercises[exerciseID]
	return res, ok
}

// Reset discards all progress and settings. Unlike the recording
// operations it reports backend failures, since it is an explicit request.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, StorageKey); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.state = DefaultState()
	return nil
}

func (s *Store) setLastActive(schedaID string) {
	id := schedaID
	s.state.LastActive = &id
}

// saveLocked persists the state. s.mu must be held.
func (s *Store) saveLocked(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.log.Warn("could not encode progress", "error", err)
		return
	}
	if err := s.backend.Put(ctx, StorageKey, data); err != nil {
		s.log.Warn("could not save progress", "key", StorageKey, "error", err)
	}
}

func (s *Store) appendAttempt(ctx context.Context, a Attempt) {
	if s.attempts == nil {
		return
	}
	if err := s.attempts.Append(ctx, a); err != nil {
		s.log.Warn("could not record attempt",
			"scheda", a.SchedaID,
			"exercise", a.ExerciseID,
			"error", err,
		)
	}
}
