package ruleset

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule is one rewrite declaration: an optional left-context guard, a
// pattern anchored at the start of the remaining input, one or more
// output segments, and the number of runes the rule advances past.
//
// The same tagged shape covers every rule kind. A plain grapheme map
// sets only Match and a single-element Out. A digraph that should leave
// part of its match for the next cycle sets Consume below the match
// length. A dialect split lists one Out entry per declared variant.
type Rule struct {
	// When, if non-empty, is a regular expression evaluated against the
	// input already consumed. It is compiled with an implicit trailing $
	// anchor, so it constrains what immediately precedes the cursor.
	// Empty means the rule fires on pattern alone.
	When string `json:"when,omitempty"`

	// Match is the pattern tested at the start of the remaining input.
	// Interpreted as a literal prefix unless Regex is set. The engine
	// performs no forward search: a rule either matches at the cursor or
	// not at all.
	Match string `json:"match"`

	// Regex marks Match as a regular expression, compiled with an
	// implicit \A anchor.
	Regex bool `json:"regex,omitempty"`

	// Out holds the output segments. A single entry is appended to every
	// variant accumulator; k entries map one-to-one onto the k declared
	// variants, in declaration order. Any other count is a table defect,
	// detected when the rule is applied. Empty strings are legal (silent
	// graphemes).
	Out []string `json:"out"`

	// Consume is how many input runes the rule advances past. Zero means
	// the rune length of the matched text. It may be smaller than the
	// match length, leaving residual matched runes for a later cycle;
	// that is how lookahead without consumption is expressed.
	Consume int `json:"consume,omitempty"`

	matchRE  *regexp.Regexp // compiled when Regex, nil otherwise
	whenRE   *regexp.Regexp // compiled when When is set, nil otherwise
	litRunes int            // rune length of Match when not Regex
}

// compile prepares the rule's patterns. Called by NewTable on its
// private copy of the rules.
func (r *Rule) compile() error {
	if r.Regex {
		re, err := regexp.Compile(`\A(?:` + r.Match + `)`)
		if err != nil {
			return fmt.Errorf("match %q: %w", r.Match, err)
		}
		r.matchRE = re
	} else {
		r.litRunes = utf8.RuneCountInString(r.Match)
	}
	if r.When != "" {
		re, err := regexp.Compile(`(?:` + r.When + `)$`)
		if err != nil {
			return fmt.Errorf("when %q: %w", r.When, err)
		}
		r.whenRE = re
	}
	return nil
}

// Matches reports whether the rule fires at the current cursor, given
// the already-consumed prefix and the remaining input. On a match it
// returns the rune length of the matched text (which feeds the default
// consume). The match is anchored: the pattern must hold at offset 0 of
// rest.
//
// Rules with Regex or When set must come from NewTable; Matches panics
// on an uncompiled pattern rather than silently misjudging the table.
func (r *Rule) Matches(prefix, rest string) (int, bool) {
	if r.When != "" {
		if r.whenRE == nil {
			panic("ruleset: rule with left context not compiled; build tables with NewTable")
		}
		if !r.whenRE.MatchString(prefix) {
			return 0, false
		}
	}

	if !r.Regex {
		if !strings.HasPrefix(rest, r.Match) {
			return 0, false
		}
		n := r.litRunes
		if n == 0 && r.Match != "" {
			n = utf8.RuneCountInString(r.Match)
		}
		return n, true
	}

	if r.matchRE == nil {
		panic("ruleset: regex rule not compiled; build tables with NewTable")
	}
	loc := r.matchRE.FindStringIndex(rest)
	if loc == nil {
		return 0, false
	}
	return utf8.RuneCountInString(rest[:loc[1]]), true
}
