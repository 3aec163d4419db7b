package answer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmpty is returned when an Answer is decoded without any alternative.
var ErrEmpty = errors.New("answer has no alternatives")

// Answer is the accepted value for one slot: either a single string or an
// ordered set of alternatives. The first alternative is the one shown to the
// learner as the correction.
type Answer struct {
	alts []string
	list bool // decoded from (or built as) a JSON array
}

// Single builds an Answer with exactly one accepted string.
func Single(s string) Answer {
	return Answer{alts: []string{s}}
}

// OneOf builds an Answer accepting any of alts. alts must not be empty.
func OneOf(alts ...string) Answer {
	return Answer{alts: append([]string(nil), alts...), list: true}
}

// IsZero reports whether the answer carries no alternatives, i.e. it was
// missing from the source data.
func (a Answer) IsZero() bool {
	return len(a.alts) == 0
}

// Alternatives returns a copy of the accepted strings in order.
func (a Answer) Alternatives() []string {
	return append([]string(nil), a.alts...)
}

// Display returns the canonical display answer: the single string, or the
// first alternative. It returns "" for a zero Answer.
func (a Answer) Display() string {
	if len(a.alts) == 0 {
		return ""
	}
	return a.alts[0]
}

// String implements fmt.Stringer.
func (a Answer) String() string {
	return a.Display()
}

// Display is the package-level form of Answer.Display.
func Display(expected Answer) string {
	return expected.Display()
}

// HasEmpty reports whether some alternative normalizes to the empty string.
// Such an alternative can never be matched.
func (a Answer) HasEmpty() bool {
	for _, alt := range a.alts {
		if Normalize(alt, true) == "" {
			return true
		}
	}
	return false
}

// Matches reports whether userInput equals, after normalization, the
// expected answer or any of its alternatives. An input that normalizes to
// the empty string never matches.
func Matches(userInput string, expected Answer, strictAccents bool) bool {
	got := Normalize(userInput, strictAccents)
	if got == "" {
		return false
	}
	for _, alt := range expected.alts {
		if Normalize(alt, strictAccents) == got {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts either a JSON string or a non-empty array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var alts []string
		if err := json.Unmarshal(data, &alts); err != nil {
			return fmt.Errorf("answer alternatives: %w", err)
		}
		if len(alts) == 0 {
			return ErrEmpty
		}
		*a = Answer{alts: alts, list: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings: %w", err)
	}
	*a = Single(s)
	return nil
}

// MarshalJSON writes the answer back in the shape it was read in.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.list || len(a.alts) > 1 {
		return json.Marshal(a.alts)
	}
	return json.Marshal(a.Display())
}
