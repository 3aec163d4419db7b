package content

import (
	"fmt"
	"strings"

	"github.com/italienapp/italienapp/internal/exercise"
)

// Report collects content problems. Errors are authoring bugs that break
// scoring or navigation; warnings are suspicious but tolerated.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Err returns the errors combined into one error, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("content validation failed:\n  %s", strings.Join(r.Errors, "\n  "))
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the manifest and every scheda it lists. It returns an
// error only when the manifest itself cannot be read.
func Validate(l *Loader) (*Report, error) {
	r := &Report{}

	raw, err := l.RawManifest()
	if err != nil {
		return nil, err
	}
	if err := checkSchema("manifest", raw); err != nil {
		r.errorf("manifest: %v", err)
	}

	m, err := l.Manifest()
	if err != nil {
		r.errorf("manifest: %v", err)
		return r, nil
	}
	validateManifest(r, m)

	for _, id := range m.Order {
		if !l.Exists(id) {
			r.warnf("scheda %q: listed in manifest but has no data file", id)
			continue
		}
		validateScheda(r, l, id, m.Schede[id])
	}
	return r, nil
}

func validateManifest(r *Report, m *Manifest) {
	listed := make(map[string]bool)
	for _, c := range m.Categories {
		seen := make(map[string]bool, len(c.Schede))
		for _, id := range c.Schede {
			if _, ok := m.Schede[id]; !ok {
				r.errorf("category %q references unknown scheda %q", c.Name, id)
			}
			if seen[id] {
				r.warnf("category %q lists scheda %q more than once", c.Name, id)
			}
			seen[id] = true
			listed[id] = true
		}
	}
	for _, id := range m.Order {
		if !listed[id] {
			r.warnf("scheda %q is not in any category", id)
		}
	}
}

func validateScheda(r *Report, l *Loader, id string, info SchedaInfo) {
	prefix := fmt.Sprintf("scheda %q", id)

	raw, err := l.RawScheda(id)
	if err != nil {
		r.errorf("%s: %v", prefix, err)
		return
	}
	if err := checkSchema("scheda", raw); err != nil {
		r.errorf("%s: %v", prefix, err)
	}

	s, err := l.Scheda(id)
	if err != nil {
		r.errorf("%s: %v", prefix, err)
		return
	}

	if s.Meta.ID.String() != id {
		r.warnf("%s: meta id is %q", prefix, s.Meta.ID)
	}
	if info.Title != "" && s.Meta.Title != info.Title {
		r.warnf("%s: title %q differs from manifest title %q", prefix, s.Meta.Title, info.Title)
	}

	for _, sec := range s.Theory.Sections {
		if !sec.Type.Known() {
			r.warnf("%s: unknown theory section type %q", prefix, sec.Type)
		}
	}

	ids := make(map[string]bool, len(s.Exercises))
	for _, ex := range s.Exercises {
		if ids[ex.ID] {
			r.errorf("%s: duplicate exercise id %q", prefix, ex.ID)
		}
		ids[ex.ID] = true

		for _, sl := range exercise.EmptyAnswers(ex) {
			if sl.Part >= 0 {
				r.errorf("%s: exercise %q item %d part %d: answer is empty after normalization", prefix, ex.ID, sl.Item, sl.Part)
			} else {
				r.errorf("%s: exercise %q item %d: answer is empty after normalization", prefix, ex.ID, sl.Item)
			}
		}

		if mc, ok := ex.Body.(*exercise.MultipleChoice); ok {
			for i, it := range mc.Items {
				if it.CorrectOption(false) < 0 {
					r.warnf("%s: exercise %q item %d: answer %q matches none of the options", prefix, ex.ID, i, it.Answer.Display())
				}
			}
		}
	}

	if n := s.GradableCount(); n != info.ExerciseCount {
		r.errorf("%s: manifest exerciseCount is %d but the scheda has %d gradable exercises", prefix, info.ExerciseCount, n)
	}
}
