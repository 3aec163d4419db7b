package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"
)

// Version is the only state layout this package understands. Stored state
// with any other version is discarded.
const Version = 1

// StorageKey is the fixed key the state is persisted under.
const StorageKey = "italienapp-progress"

// timeLayout matches the millisecond UTC timestamps written by browsers,
// so state exported from the web app decodes unchanged.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// State is the persisted progress record.
type State struct {
	Version    int                     `json:"version"`
	LastActive *string                 `json:"lastActive"`
	Settings   Settings                `json:"settings"`
	Schede     map[string]*SchedaState `json:"schede"`
}

// Settings are the learner's preferences.
type Settings struct {
	StrictAccents bool `json:"strictAccents"`
	DarkMode      bool `json:"darkMode"`
}

// SettingsPatch changes only the fields that are non-nil.
type SettingsPatch struct {
	StrictAccents *bool
	DarkMode      *bool
}

// SchedaState is the progress within one scheda.
type SchedaState struct {
	TheoryViewed bool                      `json:"theoryViewed"`
	Exercises    map[string]ExerciseResult `json:"exercises"`
}

// ExerciseResult is either a score record (gradable exercises) or an
// attempted flag (open-ended exercises).
type ExerciseResult struct {
	Score       int
	Total       int
	Attempts    int
	Attempted   bool
	LastAttempt time.Time
}

// OpenEnded reports whether r is an attempted-flag record.
func (r ExerciseResult) OpenEnded() bool {
	return r.Attempted
}

type scoreRecord struct {
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Attempts    int    `json:"attempts"`
	LastAttempt string `json:"lastAttempt"`
}

type attemptedRecord struct {
	Attempted   bool   `json:"attempted"`
	LastAttempt string `json:"lastAttempt"`
}

// MarshalJSON writes {score, total, attempts, lastAttempt} or
// {attempted, lastAttempt}.
func (r ExerciseResult) MarshalJSON() ([]byte, error) {
	ts := r.LastAttempt.UTC().Format(timeLayout)
	if r.Attempted {
		return json.Marshal(attemptedRecord{Attempted: true, LastAttempt: ts})
	}
	return json.Marshal(scoreRecord{
		Score:       r.Score,
		Total:       r.Total,
		Attempts:    r.Attempts,
		LastAttempt: ts,
	})
}

func (r *ExerciseResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Score       int    `json:"score"`
		Total       int    `json:"total"`
		Attempts    int    `json:"attempts"`
		Attempted   bool   `json:"attempted"`
		LastAttempt string `json:"lastAttempt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ExerciseResult{
		Score:     raw.Score,
		Total:     raw.Total,
		Attempts:  raw.Attempts,
		Attempted: raw.Attempted,
	}
	if raw.LastAttempt != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw.LastAttempt)
		if err != nil {
			return err
		}
		r.LastAttempt = ts
	}
	return nil
}

// DefaultState returns a fresh state with no progress.
func DefaultState() *State {
	return &State{
		Version: Version,
		Schede:  make(map[string]*SchedaState),
	}
}

// decodeState parses stored state. Anything unreadable, or written with a
// different version, yields the default state and the reason.
func decodeState(data []byte) (*State, error) {
	if len(data) == 0 {
		return DefaultState(), errors.New("empty state")
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return DefaultState(), fmt.Errorf("decode state: %w", err)
	}
	if st.Version != Version {
		return DefaultState(), fmt.Errorf("unsupported state version %d, want %d", st.Version, Version)
	}
	if st.Schede == nil {
		st.Schede = make(map[string]*SchedaState)
	}
	for id, sc := range st.Schede {
		if sc == nil {
			delete(st.Schede, id)
			continue
		}
		if sc.Exercises == nil {
			sc.Exercises = make(map[string]ExerciseResult)
		}
	}
	return &st, nil
}

func (st *State) scheda(id string) *SchedaState {
	sc, ok := st.Schede[id]
	if !ok {
		sc = &SchedaState{Exercises: make(map[string]ExerciseResult)}
		st.Schede[id] = sc
	}
	return sc
}

func (sc *SchedaState) clone() SchedaState {
	return SchedaState{
		TheoryViewed: sc.TheoryViewed,
		Exercises:    maps.Clone(sc.Exercises),
	}
}

// Recorded returns the number of exercises with any stored result,
// regardless of score.
func (sc SchedaState) Recorded() int {
	return len(sc.Exercises)
}
