package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// quoteReplacer maps apostrophe-like and double-quote-like variants to
// their ASCII forms.
var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"`", "'",
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"«", `"`, // «
	"»", `"`, // »
)

// accentFolds maps the lowercase Italian accented vowels to their base letter.
var accentFolds = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
}

// Normalize canonicalizes a learner answer for comparison.
//
// Rules, applied in order:
//   - Unicode NFC, so a decomposed "e" + U+0301 equals "é"
//   - Leading/trailing whitespace is trimmed
//   - Comparison is case-insensitive
//   - Runs of whitespace collapse to a single space
//   - Curly single quotes and backticks become "'"
//   - Curly double quotes and guillemets become '"'
//   - A single trailing period is dropped ("Sono qui." == "Sono qui");
//     an ellipsis ("..") is kept
//   - Unless strictAccents is set, à/è/ì/ò/ù and their variants fold to
//     the unaccented vowel, repeatedly, until no stacked combining mark
//     recomposes into a foldable vowel
//
// The result is only meant for comparison, never for display.
func Normalize(text string, strictAccents bool) string {
	s := norm.NFC.String(text)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	s = quoteReplacer.Replace(s)
	s = trimTrailingPeriod(s)

	if !strictAccents {
		s = foldAccents(s)
		for {
			t := foldAccents(norm.NFC.String(s))
			if t == s {
				break
			}
			s = t
		}
	}
	return s
}

// trimTrailingPeriod drops a final "." that is not part of an ellipsis.
// Whitespace exposed by the removal is trimmed too, which keeps Normalize
// idempotent for inputs like "a. .".
func trimTrailingPeriod(s string) string {
	for strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "..") {
		s = strings.TrimRightFunc(s[:len(s)-1], unicode.IsSpace)
	}
	return s
}

func foldAccents(s string) string {
	return strings.Map(func(r rune) rune {
		if base, ok := accentFolds[r]; ok {
			return base
		}
		return r
	}, s)
}
