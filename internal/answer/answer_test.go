package answer

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMatches_Single(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		strict   bool
		want     bool
	}{
		{"perche", "perché", false, true},
		{"perche", "perché", true, false},
		{"perché", "perché", true, true},
		{"Sono qui.", "Sono qui", false, true},
		{"Ciao   Mondo", "ciao mondo", false, true},
		{"", "ciao", false, false},
		{"ciao", "", false, false},
		{"l'ho", "l’ho", true, true},
		{"vado", "va", false, false},
	}

	for _, tc := range tests {
		got := Matches(tc.input, Single(tc.expected), tc.strict)
		if got != tc.want {
			t.Errorf("Matches(%q, %q, %v) = %v, want %v", tc.input, tc.expected, tc.strict, got, tc.want)
		}
	}
}

func TestMatches_Alternatives(t *testing.T) {
	a := OneOf("vado", "vò")

	tests := []struct {
		input  string
		strict bool
		want   bool
	}{
		{"Vò", false, true},
		{"vado ", false, true},
		{"vo", false, true},
		{"vo", true, false},
		{"Vò", true, true},
		{"vai", false, false},
	}

	for _, tc := range tests {
		got := Matches(tc.input, a, tc.strict)
		if got != tc.want {
			t.Errorf("Matches(%q, [vado vò], %v) = %v, want %v", tc.input, tc.strict, got, tc.want)
		}
	}
}

func TestMatches_ZeroAnswerNeverMatches(t *testing.T) {
	if Matches("", Answer{}, false) {
		t.Error("expected zero answer to match nothing")
	}
}

func TestDisplay(t *testing.T) {
	if got := Display(Single("ho mangiato")); got != "ho mangiato" {
		t.Errorf("Display(single) = %q, want %q", got, "ho mangiato")
	}
	if got := Display(OneOf("vado", "vò")); got != "vado" {
		t.Errorf("Display(alternatives) = %q, want %q", got, "vado")
	}
	if got := Display(Answer{}); got != "" {
		t.Errorf("Display(zero) = %q, want empty", got)
	}
}

func TestAnswer_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr error
	}{
		{"string", `"sono"`, []string{"sono"}, nil},
		{"array", `["vado", "vò"]`, []string{"vado", "vò"}, nil},
		{"empty array", `[]`, nil, ErrEmpty},
		{"number", `3`, nil, errors.New("any")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Answer
			err := json.Unmarshal([]byte(tc.input), &a)
			if tc.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error, got answer %v", a.Alternatives())
				}
				if errors.Is(tc.wantErr, ErrEmpty) && !errors.Is(err, ErrEmpty) {
					t.Errorf("error = %v, want ErrEmpty", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := a.Alternatives()
			if len(got) != len(tc.want) {
				t.Fatalf("alternatives = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("alternatives[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestAnswer_NullStaysZero(t *testing.T) {
	var v struct {
		Answer Answer `json:"answer"`
	}
	if err := json.Unmarshal([]byte(`{"answer": null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !v.Answer.IsZero() {
		t.Errorf("expected zero answer for null, got %v", v.Answer.Alternatives())
	}
}

func TestMatches_EmptyInputNeverMatches(t *testing.T) {
	tests := []struct {
		input    string
		expected Answer
	}{
		{"", Single("")},
		{"  ", Single("")},
		{".", Single(".")},
		{"", OneOf("vado", ".")},
		{" . ", OneOf("", "vado")},
	}

	for _, tc := range tests {
		for _, strict := range []bool{false, true} {
			if Matches(tc.input, tc.expected, strict) {
				t.Errorf("Matches(%q, %v, %v) = true, want false", tc.input, tc.expected, strict)
			}
		}
	}
}

func TestAnswer_HasEmpty(t *testing.T) {
	tests := []struct {
		a    Answer
		want bool
	}{
		{Single("sono"), false},
		{Single(""), true},
		{OneOf("vado", "."), true},
		{OneOf("vado", "vo'"), false},
		{Answer{}, false},
	}

	for _, tc := range tests {
		if got := tc.a.HasEmpty(); got != tc.want {
			t.Errorf("%v.HasEmpty() = %v, want %v", tc.a, got, tc.want)
		}
	}
}
