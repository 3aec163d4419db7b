package content

import (
	"github.com/italienapp/italienapp/internal/exercise"
)

// Scheda is one grammar unit: metadata, theory and exercises.
type Scheda struct {
	Meta      Meta                `json:"meta"`
	Theory    Theory              `json:"theory"`
	Exercises []exercise.Exercise `json:"exercises"`
}

// Meta identifies a scheda. IDs may be non-numeric, e.g. "19bis".
type Meta struct {
	ID       exercise.Label `json:"id"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle,omitempty"`
}

// Exercise returns the exercise with the given id.
func (s *Scheda) Exercise(id string) (exercise.Exercise, bool) {
	for _, ex := range s.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return exercise.Exercise{}, false
}

// GradableCount returns the number of exercises that produce a score.
func (s *Scheda) GradableCount() int {
	n := 0
	for _, ex := range s.Exercises {
		if ex.Gradable() {
			n++
		}
	}
	return n
}
