package engine

import (
	"unicode/utf8"

	"github.com/roach88/ipaglot/internal/ruleset"
)

// firstMatch scans the table in declaration order and returns the index
// of the first rule that fires at the cursor, the rune length of its
// matched text, and the number of rules examined.
//
// The scan starts from rule zero every cycle — never pinned to a later
// rule — because a rule that lost last cycle may become eligible once
// the consumed prefix its left context sees has changed.
//
// Returns index -1 when no rule matches; the caller falls back.
func firstMatch(tab *ruleset.Table, prefix, rest string) (idx, matchRunes, evals int) {
	n := tab.Len()
	for i := 0; i < n; i++ {
		r := tab.At(i)
		evals++
		if runes, ok := r.Matches(prefix, rest); ok {
			return i, runes, evals
		}
	}
	return -1, 0, evals
}

// advanceBytes returns the byte length of the first n runes of s.
// The caller guarantees s holds at least n runes.
func advanceBytes(s string, n int) int {
	b := 0
	for i := 0; i < n; i++ {
		_, size := utf8.DecodeRuneInString(s[b:])
		b += size
	}
	return b
}
