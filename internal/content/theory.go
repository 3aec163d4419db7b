package content

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// Theory is the explanatory part of a scheda.
type Theory struct {
	Sections []Section `json:"sections"`
}

// SectionType tags a theory section.
type SectionType string

const (
	SectionIntro     SectionType = "intro"
	SectionHeading   SectionType = "heading"
	SectionParagraph SectionType = "paragraph"
	SectionTable     SectionType = "table"
	SectionExample   SectionType = "example"
	SectionRule      SectionType = "rule"
	SectionNote      SectionType = "note"
	SectionList      SectionType = "list"
)

// Known reports whether t is a section type the renderers understand.
// Unknown sections are skipped when rendering.
func (t SectionType) Known() bool {
	switch t {
	case SectionIntro, SectionHeading, SectionParagraph, SectionTable,
		SectionExample, SectionRule, SectionNote, SectionList:
		return true
	}
	return false
}

// Section is one block of theory. Which fields are set depends on Type:
// Content for text blocks, Caption/Headers/Rows for tables, Examples for
// example boxes and Items for lists.
type Section struct {
	Type     SectionType
	Content  string
	Caption  string
	Headers  []string
	Rows     [][]string
	Examples []Example
	Items    []string
}

// Example is an Italian sentence with an optional highlighted fragment.
type Example struct {
	Italian   string `json:"italian"`
	Highlight string `json:"highlight,omitempty"`
}

// UnmarshalJSON decodes "items" as examples or list entries depending on
// the section type.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    SectionType     `json:"type"`
		Content string          `json:"content"`
		Caption string          `json:"caption"`
		Headers []string        `json:"headers"`
		Rows    [][]string      `json:"rows"`
		Items   json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Section{
		Type:    raw.Type,
		Content: raw.Content,
		Caption: raw.Caption,
		Headers: raw.Headers,
		Rows:    raw.Rows,
	}
	if len(raw.Items) == 0 {
		return nil
	}
	switch raw.Type {
	case SectionExample:
		return json.Unmarshal(raw.Items, &s.Examples)
	case SectionList:
		return json.Unmarshal(raw.Items, &s.Items)
	}
	return nil
}

// Split locates Highlight in Italian, ignoring case. ok is false when there
// is no highlight or it does not occur.
func (e Example) Split() (before, match, after string, ok bool) {
	if e.Highlight == "" {
		return e.Italian, "", "", false
	}
	want := utf8.RuneCountInString(e.Highlight)
	text := e.Italian
	for i := range text {
		j, n := i, 0
		for j < len(text) && n < want {
			_, size := utf8.DecodeRuneInString(text[j:])
			j += size
			n++
		}
		if n < want {
			break
		}
		if strings.EqualFold(text[i:j], e.Highlight) {
			return text[:i], text[i:j], text[j:], true
		}
	}
	return text, "", "", false
}

// Style is the inline style of a span of theory text.
type Style int

const (
	StylePlain Style = iota
	StyleBold
	StyleItalic
	StyleCode
)

// Span is a run of text with one style.
type Span struct {
	Text  string
	Style Style
}

// markers in precedence order; "**" must be tried before "*".
var markers = []struct {
	delim string
	style Style
}{
	{"**", StyleBold},
	{"*", StyleItalic},
	{"`", StyleCode},
}

// ParseMarkup splits text written with **bold**, *italic* and `code`
// markers into spans. Markers without a non-empty closing partner are
// kept as literal text.
func ParseMarkup(text string) []Span {
	var (
		spans []Span
		plain strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		matched := false
		for _, m := range markers {
			if !strings.HasPrefix(text[i:], m.delim) {
				continue
			}
			start := i + len(m.delim)
			end := strings.Index(text[start:], m.delim)
			if end <= 0 {
				continue
			}
			flush()
			spans = append(spans, Span{Text: text[start : start+end], Style: m.style})
			i = start + end + len(m.delim)
			matched = true
			break
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(text[i:])
			plain.WriteString(text[i : i+size])
			i += size
		}
	}
	flush()
	return spans
}

// PlainText returns text with markup markers removed.
func PlainText(text string) string {
	var b strings.Builder
	for _, sp := range ParseMarkup(text) {
		b.WriteString(sp.Text)
	}
	return b.String()
}
