package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/italienapp/italienapp/internal/exercise"
)

// Manifest is the global catalog of categories and schede.
type Manifest struct {
	Categories []Category
	Schede     map[string]SchedaInfo

	// Order lists the keys of Schede in document order.
	Order []string
}

// Category groups schede under a topic.
type Category struct {
	Name   string
	Icon   string
	Schede []string
}

// SchedaInfo is the manifest summary of one scheda. ExerciseCount is the
// number of gradable exercises, used as the completion threshold.
type SchedaInfo struct {
	Title         string `json:"title"`
	ExerciseCount int    `json:"exerciseCount"`
}

// Info returns the summary for id.
func (m *Manifest) Info(id string) (SchedaInfo, bool) {
	info, ok := m.Schede[id]
	return info, ok
}

// CategoryOf returns the first category listing id.
func (m *Manifest) CategoryOf(id string) (Category, bool) {
	for _, c := range m.Categories {
		if slices.Contains(c.Schede, id) {
			return c, true
		}
	}
	return Category{}, false
}

// Neighbours returns the schede before and after id in manifest order.
// Either is empty at the ends, and both are empty for an unknown id.
func Neighbours(m *Manifest, id string) (prev, next string) {
	i := slices.Index(m.Order, id)
	if i < 0 {
		return "", ""
	}
	if i > 0 {
		prev = m.Order[i-1]
	}
	if i < len(m.Order)-1 {
		next = m.Order[i+1]
	}
	return prev, next
}

// UnmarshalJSON accepts scheda ids written as numbers or strings.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string           `json:"name"`
		Icon   string           `json:"icon"`
		Schede []exercise.Label `json:"schede"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Name, c.Icon = raw.Name, raw.Icon
	c.Schede = make([]string, len(raw.Schede))
	for i, id := range raw.Schede {
		c.Schede[i] = id.String()
	}
	return nil
}

// UnmarshalJSON decodes categories and the schede object, keeping the
// object's key order.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Categories []Category      `json:"categories"`
		Schede     json.RawMessage `json:"schede"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	schede, order, err := decodeOrdered(raw.Schede)
	if err != nil {
		return fmt.Errorf("schede: %w", err)
	}
	*m = Manifest{Categories: raw.Categories, Schede: schede, Order: order}
	return nil
}

func decodeOrdered(data []byte) (map[string]SchedaInfo, []string, error) {
	schede := make(map[string]SchedaInfo)
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return schede, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := tok.(string)

		var info SchedaInfo
		if err := dec.Decode(&info); err != nil {
			return nil, nil, fmt.Errorf("scheda %q: %w", key, err)
		}
		if _, dup := schede[key]; !dup {
			order = append(order, key)
		}
		schede[key] = info
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return schede, order, nil
}
