package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ipaglot/internal/lang"
	"github.com/roach88/ipaglot/internal/langpack"
)

// Harness runs pronunciation scenarios against a catalog.
type Harness struct {
	catalog *lang.Catalog
	logger  *slog.Logger
}

// New creates a harness over an existing catalog.
func New(catalog *lang.Catalog) *Harness {
	return &Harness{
		catalog: catalog,
		// Suppress logs in tests
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// NewDefault creates a harness over the built-in catalog.
func NewDefault() (*Harness, error) {
	catalog, err := lang.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return New(catalog), nil
}

// SetLogger replaces the harness logger. The default discards.
func (h *Harness) SetLogger(logger *slog.Logger) {
	h.logger = logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Resolve the transcriber: the scenario's pack_dir if set,
//     otherwise the harness catalog
//  2. Transcribe each case in order
//  3. Evaluate the case's expectations against the result
//  4. Return the aggregate with pass/fail and per-case outcomes
//
// Scenario-level problems (unknown language, unloadable pack_dir)
// return an error; expectation failures land in the result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	tr, err := h.resolveTranscriber(scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult(scenario.Name, scenario.Language)

	for i, c := range scenario.Cases {
		res, err := tr.Transcribe(c.Input)
		if err != nil {
			// Table defects surface per case: a defective rule only
			// fires when its pattern matches this input.
			result.AddCase(CaseResult{
				Input:  c.Input,
				Errors: []string{fmt.Sprintf("cases[%d] %q: %v", i, c.Input, err)},
			})
			continue
		}

		errs := evaluateCase(res, c)
		result.AddCase(CaseResult{
			Input:    c.Input,
			Variants: res.Variants,
			Gaps:     res.Gaps,
			Errors:   errs,
			Pass:     len(errs) == 0,
		})

		h.logger.Info("case completed",
			"scenario", scenario.Name,
			"case", i,
			"input", c.Input,
			"pass", len(errs) == 0,
		)
	}

	return result, nil
}

// resolveTranscriber picks the transcriber for a scenario. A pack_dir
// builds a scenario-local catalog so local packs never leak between
// scenarios.
func (h *Harness) resolveTranscriber(scenario *Scenario) (*lang.Transcriber, error) {
	if scenario.PackDir == "" {
		tr, err := h.catalog.Lookup(scenario.Language)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		return tr, nil
	}

	packs, err := langpack.LoadDir(scenario.PackDir)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: failed to load pack_dir: %w", scenario.Name, err)
	}

	local, err := lang.NewCatalog(lang.WithoutBuiltins(), lang.WithPacks(packs...))
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	tr, err := local.Lookup(scenario.Language)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	return tr, nil
}
