package engine

import (
	"errors"
	"fmt"
)

// DefectError reports a defect in an externally supplied rule table,
// detected at the moment a rule is applied.
//
// Table defects include:
//   - Consume out of range: effective consume below 1, or past the end
//     of the remaining input
//   - Variant arity mismatch: an output list that does not line up with
//     the declared variant labels
//
// These are authoring faults, not properties of user input: under- or
// over-consuming would silently corrupt every later cycle, so the call
// fails fast instead of papering over the table.
type DefectError struct {
	// Code identifies the defect category.
	Code DefectCode

	// RuleIndex is the position of the offending rule in its table,
	// -1 when the defect is not tied to a single rule.
	RuleIndex int

	// Pos is the rune offset in the input where the defect surfaced.
	Pos int

	// Message is a human-readable description.
	Message string
}

// DefectCode categorizes table defects.
type DefectCode string

const (
	// DefectConsumeNonPositive indicates an effective consume below 1.
	// Declared zero with an empty match lands here too: such a rule
	// would never advance the cursor.
	DefectConsumeNonPositive DefectCode = "CONSUME_NON_POSITIVE"

	// DefectConsumeOverrun indicates a consume past the remaining input.
	DefectConsumeOverrun DefectCode = "CONSUME_OVERRUN"

	// DefectVariantArity indicates an output list whose length is
	// neither 1 nor the declared variant count.
	DefectVariantArity DefectCode = "VARIANT_ARITY_MISMATCH"

	// DefectNoVariants indicates a call with no variant labels at all.
	DefectNoVariants DefectCode = "VARIANT_LABELS_EMPTY"
)

// Error implements the error interface.
func (e *DefectError) Error() string {
	if e.RuleIndex >= 0 {
		return fmt.Sprintf("%s: %s (rule=%d, pos=%d)", e.Code, e.Message, e.RuleIndex, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDefect returns true if the error is a table defect of any kind.
// Uses errors.As to handle wrapped errors.
func IsDefect(err error) bool {
	var de *DefectError
	return errors.As(err, &de)
}

// IsConsumeDefect returns true for consume range defects.
// Uses errors.As to handle wrapped errors.
func IsConsumeDefect(err error) bool {
	var de *DefectError
	if errors.As(err, &de) {
		return de.Code == DefectConsumeNonPositive || de.Code == DefectConsumeOverrun
	}
	return false
}

// IsArityDefect returns true for variant arity defects, including calls
// made with no variant labels.
// Uses errors.As to handle wrapped errors.
func IsArityDefect(err error) bool {
	var de *DefectError
	if errors.As(err, &de) {
		return de.Code == DefectVariantArity || de.Code == DefectNoVariants
	}
	return false
}

// newConsumeDefect builds the defect for an effective consume below 1.
func newConsumeDefect(rule, pos, consume int) *DefectError {
	return &DefectError{
		Code:      DefectConsumeNonPositive,
		RuleIndex: rule,
		Pos:       pos,
		Message:   fmt.Sprintf("effective consume %d must be at least 1", consume),
	}
}

// newOverrunDefect builds the defect for a consume past the input end.
func newOverrunDefect(rule, pos, consume, remaining int) *DefectError {
	return &DefectError{
		Code:      DefectConsumeOverrun,
		RuleIndex: rule,
		Pos:       pos,
		Message:   fmt.Sprintf("rule consumes %d runes but only %d remain", consume, remaining),
	}
}

// newArityDefect builds the defect for an output list that does not
// match the declared variant count.
func newArityDefect(rule, pos, got, want int) *DefectError {
	return &DefectError{
		Code:      DefectVariantArity,
		RuleIndex: rule,
		Pos:       pos,
		Message:   fmt.Sprintf("rule lists %d outputs for %d declared variants", got, want),
	}
}
