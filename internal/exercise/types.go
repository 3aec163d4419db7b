package exercise

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/italienapp/italienapp/internal/answer"
)

var (
	// ErrMalformed marks content that is missing a required structural field.
	// It indicates an authoring bug; callers should not retry or score partially.
	ErrMalformed = errors.New("malformed exercise")

	// ErrNotGradable is returned when scoring an open-ended exercise.
	ErrNotGradable = errors.New("exercise is not machine-gradable")
)

// Kind is the exercise type tag as it appears in scheda JSON.
type Kind string

const (
	KindFillInBlank        Kind = "fill-in-blank"
	KindMultipleChoice     Kind = "multiple-choice"
	KindTransformation     Kind = "transformation"
	KindSentenceCompletion Kind = "sentence-completion"
	KindSentenceRewriting  Kind = "sentence-rewriting"
	KindTableCompletion    Kind = "table-completion"
	KindMatching           Kind = "matching"
	KindOpenEnded          Kind = "open-ended"
)

// DisplayName returns the Italian label shown in the UI.
func (k Kind) DisplayName() string {
	switch k {
	case KindFillInBlank:
		return "Completa"
	case KindMultipleChoice:
		return "Scelta multipla"
	case KindTransformation:
		return "Trasforma"
	case KindSentenceCompletion:
		return "Completa le frasi"
	case KindSentenceRewriting:
		return "Riscrivi"
	case KindTableCompletion:
		return "Completa la tabella"
	case KindMatching:
		return "Abbina"
	case KindOpenEnded:
		return "Risposta aperta"
	default:
		return string(k)
	}
}

// Body is the kind-specific part of an exercise. The set of implementations
// is closed: every kind must provide its own validation, scoring and
// solutions, so adding a kind without a scorer does not compile.
type Body interface {
	Kind() Kind
	validate() error
	score(in Input, strictAccents bool) (Result, error)
	solutions() Input
}

// Exercise is one activity within a scheda.
type Exercise struct {
	ID          string
	Number      Label
	Instruction string
	Body        Body
}

// Kind returns the kind of the exercise body.
func (e Exercise) Kind() Kind {
	if e.Body == nil {
		return ""
	}
	return e.Body.Kind()
}

// Gradable reports whether the exercise produces a score.
func (e Exercise) Gradable() bool {
	return e.Body != nil && e.Body.Kind() != KindOpenEnded
}

// Validate checks the exercise structure.
func (e Exercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformed)
	}
	if e.Body == nil {
		return fmt.Errorf("%w: exercise %q: missing body", ErrMalformed, e.ID)
	}
	if err := e.Body.validate(); err != nil {
		return fmt.Errorf("exercise %q: %w", e.ID, err)
	}
	return nil
}

// Label is a display identifier that content may write either as a JSON
// number or a JSON string (e.g. 3 or "19bis").
type Label string

// UnmarshalJSON accepts a string or a number.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label must be a string or a number: %w", err)
	}
	*l = Label(n.String())
	return nil
}

// String implements fmt.Stringer.
func (l Label) String() string {
	return string(l)
}

// envelope holds the fields common to every exercise kind.
type envelope struct {
	ID          string `json:"id"`
	Number      Label  `json:"number"`
	Instruction string `json:"instruction"`
	Type        Kind   `json:"type"`
}

// UnmarshalJSON decodes the common fields, then the body selected by "type".
// Unknown types and structurally invalid bodies are errors.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var body Body
	switch env.Type {
	case KindFillInBlank:
		body = &FillInBlank{}
	case KindMultipleChoice:
		body = &MultipleChoice{}
	case KindTransformation:
		body = &Transformation{}
	case KindSentenceCompletion:
		body = &SentenceCompletion{}
	case KindSentenceRewriting:
		body = &SentenceRewriting{}
	case KindTableCompletion:
		body = &TableCompletion{}
	case KindMatching:
		body = &Matching{}
	case KindOpenEnded:
		body = &OpenEnded{}
	case "":
		return fmt.Errorf("%w: exercise %q: missing type", ErrMalformed, env.ID)
	default:
		return fmt.Errorf("%w: exercise %q: unsupported type %q", ErrMalformed, env.ID, env.Type)
	}

	if err := json.Unmarshal(data, body); err != nil {
		return fmt.Errorf("%w: exercise %q: %v", ErrMalformed, env.ID, err)
	}

	ex := Exercise{
		ID:          env.ID,
		Number:      env.Number,
		Instruction: env.Instruction,
		Body:        body,
	}
	if err := ex.Validate(); err != nil {
		return err
	}
	*e = ex
	return nil
}

// FillInBlank is a list of single-blank items with optional surrounding text.
type FillInBlank struct {
	Items []FillInBlankItem `json:"items"`
}

type FillInBlankItem struct {
	Before string        `json:"before,omitempty"`
	After  string        `json:"after,omitempty"`
	Answer answer.Answer `json:"answer"`
}

// MultipleChoice is a list of prompts, each with its options. The answer is
// compared with the text of the selected option, so it must equal one of
// the options for the item to be answerable.
type MultipleChoice struct {
	Items []ChoiceItem `json:"items"`
}

type ChoiceItem struct {
	Prompt  string        `json:"prompt,omitempty"`
	Options []string      `json:"options"`
	Answer  answer.Answer `json:"answer"`
}

// Transformation asks to transform a given sentence.
type Transformation struct {
	Items []TransformItem `json:"items"`
}

type TransformItem struct {
	Given  string        `json:"given"`
	Answer answer.Answer `json:"answer"`
}

// SentenceCompletion is a list of sentences made of static text and blanks.
type SentenceCompletion struct {
	Items []Sentence `json:"items"`
}

type Sentence struct {
	Segments []Segment `json:"segments"`
}

// Segment is either static text or a blank carrying an answer.
type Segment struct {
	Text   string        `json:"text,omitempty"`
	Blank  bool          `json:"blank,omitempty"`
	Answer answer.Answer `json:"answer"`
}

// SentenceRewriting asks to rewrite a given sentence, optionally with a hint.
type SentenceRewriting struct {
	Items []RewriteItem `json:"items"`
}

type RewriteItem struct {
	Given  string        `json:"given"`
	Hint   string        `json:"hint,omitempty"`
	Answer answer.Answer `json:"answer"`
}

// TableCompletion is a grid of static and editable cells.
type TableCompletion struct {
	Headers []string `json:"headers,omitempty"`
	Rows    []Row    `json:"rows"`
}

type Row struct {
	Cells []Cell `json:"cells"`
}

// Cell is either static (Value) or editable (Answer).
type Cell struct {
	Value    string        `json:"value,omitempty"`
	Editable bool          `json:"editable,omitempty"`
	Answer   answer.Answer `json:"answer"`
}

// Matching pairs items of Left with items of Right. Pairs need not cover
// every left item.
type Matching struct {
	Left  []string
	Right []string
	Pairs []Pair
}

// Pair is one correct (left, right) association, written as [l, r] in JSON.
type Pair struct {
	Left  int
	Right int
}

// UnmarshalJSON decodes a two-element array.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pair: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("pair must have 2 indices, got %d", len(raw))
	}
	p.Left, p.Right = raw[0], raw[1]
	return nil
}

// MarshalJSON encodes the pair as [l, r].
func (p Pair) MarshalJSON() ([]byte, error) {
	return []byte("[" + strconv.Itoa(p.Left) + "," + strconv.Itoa(p.Right) + "]"), nil
}

type matchingJSON struct {
	Items *struct {
		Left  []string `json:"left"`
		Right []string `json:"right"`
		Pairs []Pair   `json:"pairs"`
	} `json:"items"`
}

// UnmarshalJSON reads the {"items": {"left", "right", "pairs"}} layout.
func (m *Matching) UnmarshalJSON(data []byte) error {
	var raw matchingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Items == nil {
		*m = Matching{}
		return nil
	}
	*m = Matching{Left: raw.Items.Left, Right: raw.Items.Right, Pairs: raw.Items.Pairs}
	return nil
}

// OpenEnded is free writing; it is marked done, never scored.
type OpenEnded struct {
	SuggestedAnswer string `json:"suggestedAnswer,omitempty"`
}

func (*FillInBlank) Kind() Kind        { return KindFillInBlank }
func (*MultipleChoice) Kind() Kind     { return KindMultipleChoice }
func (*Transformation) Kind() Kind     { return KindTransformation }
func (*SentenceCompletion) Kind() Kind { return KindSentenceCompletion }
func (*SentenceRewriting) Kind() Kind  { return KindSentenceRewriting }
func (*TableCompletion) Kind() Kind    { return KindTableCompletion }
func (*Matching) Kind() Kind           { return KindMatching }
func (*OpenEnded) Kind() Kind          { return KindOpenEnded }
