package content

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want []Span
	}{
		{"plain", []Span{{Text: "plain"}}},
		{"il verbo **essere**", []Span{{Text: "il verbo "}, {Text: "essere", Style: StyleBold}}},
		{"*Maria* è `andata`.", []Span{
			{Text: "Maria", Style: StyleItalic},
			{Text: " è "},
			{Text: "andata", Style: StyleCode},
			{Text: "."},
		}},
		{"2 * 3", []Span{{Text: "2 * 3"}}},
		{"**", []Span{{Text: "**"}}},
		{"", nil},
	}

	for _, tc := range tests {
		got := ParseMarkup(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseMarkup(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("Con **essere** il participio *concorda*.")
	want := "Con essere il participio concorda."
	if got != want {
		t.Errorf("PlainText = %q, want %q", got, want)
	}
}

func TestExample_Split(t *testing.T) {
	tests := []struct {
		ex                    Example
		before, match, after string
		ok                    bool
	}{
		{Example{Italian: "Siamo andati al mare.", Highlight: "siamo andati"}, "", "Siamo andati", " al mare.", true},
		{Example{Italian: "Io sono qui.", Highlight: "sono"}, "Io ", "sono", " qui.", true},
		{Example{Italian: "Perché è così?", Highlight: "È"}, "Perché ", "è", " così?", true},
		{Example{Italian: "Io sono qui.", Highlight: "sei"}, "Io sono qui.", "", "", false},
		{Example{Italian: "Ciao."}, "Ciao.", "", "", false},
	}

	for _, tc := range tests {
		before, match, after, ok := tc.ex.Split()
		if before != tc.before || match != tc.match || after != tc.after || ok != tc.ok {
			t.Errorf("Split(%q, %q) = (%q, %q, %q, %v), want (%q, %q, %q, %v)",
				tc.ex.Italian, tc.ex.Highlight, before, match, after, ok,
				tc.before, tc.match, tc.after, tc.ok)
		}
	}
}

func TestSection_UnmarshalItems(t *testing.T) {
	raw := `[
		{"type": "example", "items": [{"italian": "Io sono.", "highlight": "sono"}]},
		{"type": "list", "items": ["uno", "due"]},
		{"type": "table", "caption": "c", "headers": ["a"], "rows": [["1"], ["2"]]},
		{"type": "video", "items": 42}
	]`

	var sections []Section
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(sections[0].Examples) != 1 || sections[0].Examples[0].Highlight != "sono" {
		t.Errorf("example section = %+v", sections[0])
	}
	if !reflect.DeepEqual(sections[1].Items, []string{"uno", "due"}) {
		t.Errorf("list items = %v", sections[1].Items)
	}
	if len(sections[2].Rows) != 2 || sections[2].Caption != "c" {
		t.Errorf("table section = %+v", sections[2])
	}
	if sections[3].Type.Known() {
		t.Error("video should not be a known section type")
	}
}
