package engine

// Variant is one labeled phonemic output.
type Variant struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Gap records a fallback copy-through: an input rune no rule covered.
// Gaps are diagnostics for auditing table completeness, never errors.
type Gap struct {
	// Pos is the rune offset in the folded input.
	Pos int `json:"pos"`

	// Grapheme is the text that was copied through verbatim.
	Grapheme string `json:"grapheme"`
}

// Stats counts the work one transcription performed. The counts back the
// engine's contract directly: RuleEvals is bounded by input length times
// table size, and Runes always equals the folded input's rune length.
type Stats struct {
	// Cycles is the number of rewrite cycles, equal to the number of
	// appends every accumulator received (excluding the delimiters).
	Cycles int `json:"cycles"`

	// RuleEvals is the total number of rule match attempts.
	RuleEvals int `json:"rule_evals"`

	// Fallbacks is the number of cycles resolved by copy-through.
	Fallbacks int `json:"fallbacks"`

	// Runes is the total number of input runes consumed.
	Runes int `json:"runes"`
}

// Step is one trace entry: which rule fired at which cursor position,
// what it matched, and how far it advanced. Recorded only when the
// engine is built with WithTrace.
type Step struct {
	// Pos is the rune offset the cycle started at.
	Pos int `json:"pos"`

	// Rule is the table index of the rule that fired, -1 for fallback.
	Rule int `json:"rule"`

	// Matched is the text the pattern matched (one rune for fallback).
	Matched string `json:"matched"`

	// Consumed is the number of runes the cycle advanced past.
	Consumed int `json:"consumed"`

	// Fallback marks a copy-through cycle.
	Fallback bool `json:"fallback,omitempty"`
}

// Result is the outcome of one transcription: the ordered labeled
// outputs plus diagnostics. Results are created fresh per call and never
// shared or persisted by the engine itself.
type Result struct {
	Variants []Variant `json:"variants"`
	Gaps     []Gap     `json:"gaps,omitempty"`
	Stats    Stats     `json:"stats"`
	Trace    []Step    `json:"trace,omitempty"`
}

// First returns the first variant's text. Convenient for single-variant
// languages, where the result is effectively one string.
func (r *Result) First() string {
	if len(r.Variants) == 0 {
		return ""
	}
	return r.Variants[0].Text
}

// Get returns the text for a variant label.
func (r *Result) Get(label string) (string, bool) {
	for _, v := range r.Variants {
		if v.Label == label {
			return v.Text, true
		}
	}
	return "", false
}
