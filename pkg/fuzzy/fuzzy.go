package fuzzy

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns a character-level similarity measure in [0, 1].
// Scores follow SequenceMatcher semantics: 2*M/T where M is the number
// of matched characters and T the combined length.
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
