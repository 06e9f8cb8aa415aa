package harness

import (
	"fmt"
	"os"
	"path/filepath"
)

// SuiteResult aggregates the outcomes of running a set of scenario
// files.
type SuiteResult struct {
	Scenarios  []ScenarioOutcome `json:"scenarios"`
	TotalCases int               `json:"total_cases"`
	Passed     int               `json:"passed"`
	Failed     int               `json:"failed"`
}

// ScenarioOutcome is the outcome of one scenario file. Scenario is the
// declared name, or the file basename when the file would not load.
type ScenarioOutcome struct {
	Scenario string   `json:"scenario"`
	Path     string   `json:"path"`
	Pass     bool     `json:"pass"`
	Cases    int      `json:"cases"`
	Errors   []string `json:"errors,omitempty"`
}

// RunSuite loads and runs every scenario file under dir, in sorted
// order. Returns an error only when the directory itself is unusable;
// a broken scenario file counts as a failed outcome rather than
// aborting the suite, so one typo never hides the rest of the results.
func (h *Harness) RunSuite(dir string) (*SuiteResult, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory not found: %s", dir)
	}

	files, err := FindScenarioFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	return h.RunFiles(files), nil
}

// RunFiles runs the given scenario files in order.
//
// For each file:
//  1. Load and validate the YAML
//  2. Run it through the harness
//  3. Record the outcome, pass or fail, with any assertion errors
func (h *Harness) RunFiles(paths []string) *SuiteResult {
	suite := &SuiteResult{}

	for _, path := range paths {
		outcome := h.runFile(path)
		suite.Scenarios = append(suite.Scenarios, outcome)
		suite.TotalCases += outcome.Cases
		if outcome.Pass {
			suite.Passed++
		} else {
			suite.Failed++
		}
	}

	return suite
}

func (h *Harness) runFile(path string) ScenarioOutcome {
	scenario, err := LoadScenario(path)
	if err != nil {
		return ScenarioOutcome{
			Scenario: filepath.Base(path),
			Path:     path,
			Errors:   []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	result, err := h.Run(scenario)
	if err != nil {
		return ScenarioOutcome{
			Scenario: scenario.Name,
			Path:     path,
			Errors:   []string{fmt.Sprintf("scenario execution failed: %v", err)},
		}
	}

	return ScenarioOutcome{
		Scenario: scenario.Name,
		Path:     path,
		Pass:     result.Pass,
		Cases:    len(result.Cases),
		Errors:   result.Errors,
	}
}
