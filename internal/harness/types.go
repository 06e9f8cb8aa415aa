package harness

import (
	"github.com/roach88/ipaglot/internal/engine"
)

// CaseResult is the outcome of one scenario case.
type CaseResult struct {
	// Input is the raw text the case transcribed.
	Input string `json:"input"`

	// Variants are the renditions the engine produced, in table order.
	Variants []engine.Variant `json:"variants"`

	// Gaps are the coverage gaps the engine reported.
	Gaps []engine.Gap `json:"gaps,omitempty"`

	// Errors contains this case's assertion failures.
	Errors []string `json:"errors,omitempty"`

	// Pass is true when every expectation held.
	Pass bool `json:"pass"`
}

// Result is the outcome of one scenario execution.
type Result struct {
	// Scenario names the scenario that ran.
	Scenario string `json:"scenario"`

	// Language is the catalog code the scenario transcribed with.
	Language string `json:"language"`

	// Pass indicates overall success: every case passed.
	Pass bool `json:"pass"`

	// Cases holds the per-case outcomes, in scenario order.
	Cases []CaseResult `json:"cases"`

	// Errors aggregates every assertion failure with case context.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult(scenario, language string) *Result {
	return &Result{
		Scenario: scenario,
		Language: language,
		Pass:     true,
		Cases:    []CaseResult{},
		Errors:   []string{},
	}
}

// AddError adds a scenario-level error and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// AddCase appends a case outcome, folding its failures into the
// scenario result.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if !c.Pass {
		r.Pass = false
		r.Errors = append(r.Errors, c.Errors...)
	}
}
