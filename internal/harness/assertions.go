package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/ipaglot/internal/engine"
)

// AssertionError is returned when a case expectation fails.
// It includes enough context to debug the failure without rerunning.
type AssertionError struct {
	Type     string // Expectation type for categorization
	Input    string // The case input
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Input: %q\n", e.Input)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)

	return buf.String()
}

// evaluateCase checks every expectation of a case against the engine
// result. All failures are collected, not just the first.
func evaluateCase(res *engine.Result, c Case) []string {
	var errors []string

	if c.First != "" {
		if err := assertFirst(res, c); err != nil {
			errors = append(errors, err.Error())
		}
	}

	for _, label := range sortedLabels(c.Want) {
		if err := assertVariant(res, c, label, c.Want[label]); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if !c.AllowGaps {
		if err := assertGaps(res, c); err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertFirst checks the first variant's rendition.
func assertFirst(res *engine.Result, c Case) error {
	got := res.First()
	if got != c.First {
		return &AssertionError{
			Type:     "first",
			Input:    c.Input,
			Expected: c.First,
			Actual:   got,
		}
	}
	return nil
}

// assertVariant checks one labeled variant's rendition.
func assertVariant(res *engine.Result, c Case, label, want string) error {
	got, ok := res.Get(label)
	if !ok {
		return &AssertionError{
			Type:     "variant",
			Input:    c.Input,
			Expected: fmt.Sprintf("variant %q = %s", label, want),
			Actual:   fmt.Sprintf("no variant labeled %q (have %s)", label, variantLabels(res)),
		}
	}
	if got != want {
		return &AssertionError{
			Type:     "variant",
			Input:    c.Input,
			Expected: fmt.Sprintf("variant %q = %s", label, want),
			Actual:   fmt.Sprintf("variant %q = %s", label, got),
		}
	}
	return nil
}

// assertGaps checks the coverage gaps exactly: count, positions, and
// graphemes all have to line up. A case that lists no gaps asserts a
// gap-free transcription.
func assertGaps(res *engine.Result, c Case) error {
	if len(res.Gaps) != len(c.Gaps) {
		return &AssertionError{
			Type:     "gaps",
			Input:    c.Input,
			Expected: fmt.Sprintf("%d gaps (%s)", len(c.Gaps), formatGapSpecs(c.Gaps)),
			Actual:   fmt.Sprintf("%d gaps (%s)", len(res.Gaps), formatGaps(res.Gaps)),
		}
	}

	for i, want := range c.Gaps {
		got := res.Gaps[i]
		if got.Pos != want.Pos || got.Grapheme != want.Grapheme {
			return &AssertionError{
				Type:     "gaps",
				Input:    c.Input,
				Expected: fmt.Sprintf("gap[%d] = %q at %d", i, want.Grapheme, want.Pos),
				Actual:   fmt.Sprintf("gap[%d] = %q at %d", i, got.Grapheme, got.Pos),
			}
		}
	}

	return nil
}

// sortedLabels returns the want map's labels in deterministic order so
// failure lists never reshuffle between runs.
func sortedLabels(want map[string]string) []string {
	labels := make([]string, 0, len(want))
	for label := range want {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// variantLabels formats the labels a result carries.
func variantLabels(res *engine.Result) string {
	if len(res.Variants) == 0 {
		return "none"
	}
	labels := make([]string, len(res.Variants))
	for i, v := range res.Variants {
		labels[i] = fmt.Sprintf("%q", v.Label)
	}
	return strings.Join(labels, ", ")
}

// formatGapSpecs formats expected gaps for failure messages.
func formatGapSpecs(gaps []GapSpec) string {
	if len(gaps) == 0 {
		return "none"
	}
	parts := make([]string, len(gaps))
	for i, g := range gaps {
		parts[i] = fmt.Sprintf("%q at %d", g.Grapheme, g.Pos)
	}
	return strings.Join(parts, ", ")
}

// formatGaps formats actual gaps for failure messages.
func formatGaps(gaps []engine.Gap) string {
	if len(gaps) == 0 {
		return "none"
	}
	parts := make([]string, len(gaps))
	for i, g := range gaps {
		parts[i] = fmt.Sprintf("%q at %d", g.Grapheme, g.Pos)
	}
	return strings.Join(parts, ", ")
}
