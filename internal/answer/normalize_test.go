package answer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input  string
		strict bool
		want   string
	}{
		{"  Ciao   Mondo ", false, "ciao mondo"},
		{"ciao\t\nmondo", false, "ciao mondo"},
		{"Sono qui.", false, "sono qui"},
		{"Sono qui .", false, "sono qui"},
		{"Aspetta...", false, "aspetta..."},
		{"Aspetta..", false, "aspetta.."},
		{"il sig. Rossi", false, "il sig. rossi"},
		{"l’amico", false, "l'amico"},
		{"l‘amico", false, "l'amico"},
		{"l`amico", false, "l'amico"},
		{"«ciao»", false, `"ciao"`},
		{"“ciao”", false, `"ciao"`},
		{"Perché", false, "perche"},
		{"Perché", true, "perché"},
		{"PERCHÉ", false, "perche"},
		{"città più già", false, "citta piu gia"},
		{"àáâã èéêë ìíîï òóôõ ùúûü", false, "aaaa eeee iiii oooo uuuu"},
		{"perché", true, "perché"},
		{"perché", false, "perche"},
		{"", false, ""},
		{"   ", true, ""},
		{".", false, ""},
	}

	for _, tc := range tests {
		got := Normalize(tc.input, tc.strict)
		if got != tc.want {
			t.Errorf("Normalize(%q, %v) = %q, want %q", tc.input, tc.strict, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Ciao   Mondo",
		"Sono qui.",
		"a. .",
		"a . . .",
		"Aspetta...",
		" «Perché?» disse. ",
		"l’ho vista`",
		"İstanbul",
		"perché.",
		" spazio largo ",
		"",
	}

	for _, in := range inputs {
		for _, strict := range []bool{false, true} {
			once := Normalize(in, strict)
			twice := Normalize(once, strict)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q (strict=%v): %q then %q", in, strict, once, twice)
			}
		}
	}
}

func TestNormalize_FoldsStackedMarks(t *testing.T) {
	tests := []struct {
		input  string
		strict bool
		want   string
	}{
		{"È\u0300", false, "e"},
		{"aex\tè\u0300", false, "aex e"},
		{"o\u0300\u0301", false, "o"},
		{"È\u0300", true, "è\u0300"},
	}

	for _, tc := range tests {
		if got := Normalize(tc.input, tc.strict); got != tc.want {
			t.Errorf("Normalize(%q, %v) = %q, want %q", tc.input, tc.strict, got, tc.want)
		}
	}
}
