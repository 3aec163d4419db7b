package progress

import (
	"math"

	"github.com/italienapp/italienapp/internal/content"
)

// Status is the completion state of a scheda.
type Status int

const (
	NotStarted Status = iota
	InProgress
	Completed
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	default:
		return "not-started"
	}
}

// Summary counts completed schede.
type Summary struct {
	Completed  int
	Total      int
	Percentage int
}

func newSummary(completed, total int) Summary {
	sum := Summary{Completed: completed, Total: total}
	if total > 0 {
		sum.Percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return sum
}

// completed reports whether at least expected exercises have a stored
// result. Any result counts, including 0 scores and open-ended records.
func completed(recorded, expected int) bool {
	return expected > 0 && recorded >= expected
}

// SchedaStatus classifies a scheda against its manifest exercise count.
func (s *Store) SchedaStatus(schedaID string, expected int) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(schedaID, expected)
}

func (s *Store) statusLocked(schedaID string, expected int) Status {
	sc, ok := s.state.Schede[schedaID]
	if !ok {
		return NotStarted
	}
	recorded := sc.Recorded()
	if recorded == 0 {
		if sc.TheoryViewed {
			return InProgress
		}
		return NotStarted
	}
	if completed(recorded, expected) {
		return Completed
	}
	return InProgress
}

// OverallProgress counts completed schede across the whole manifest.
func (s *Store) OverallProgress(m *content.Manifest) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := 0
	for id, info := range m.Schede {
		if s.statusLocked(id, info.ExerciseCount) == Completed {
			done++
		}
	}
	return newSummary(done, len(m.Schede))
}

// CategoryProgress counts completed schede within one category. Ids not
// present in the manifest are not counted.
func (s *Store) CategoryProgress(m *content.Manifest, c content.Category) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	done, total := 0, 0
	for _, id := range c.Schede {
		info, ok := m.Schede[id]
		if !ok {
			continue
		}
		total++
		if s.statusLocked(id, info.ExerciseCount) == Completed {
			done++
		}
	}
	return newSummary(done, total)
}
