package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ipaglot/internal/ruleset"
)

// resultToCanonicalMap converts a Result to a map[string]any for
// canonical JSON serialization. This is required because
// ruleset.MarshalCanonical only handles maps, slices, and primitives.
// Pass/fail and error strings are deliberately left out: the snapshot
// pins what the engine produced, not how it was judged.
func resultToCanonicalMap(r *Result) map[string]any {
	caseList := make([]any, len(r.Cases))
	for i, c := range r.Cases {
		variants := make([]any, len(c.Variants))
		for j, v := range c.Variants {
			variants[j] = map[string]any{
				"label": v.Label,
				"text":  v.Text,
			}
		}

		caseMap := map[string]any{
			"input":    c.Input,
			"variants": variants,
		}
		if len(c.Gaps) > 0 {
			gaps := make([]any, len(c.Gaps))
			for j, g := range c.Gaps {
				gaps[j] = map[string]any{
					"pos":      g.Pos,
					"grapheme": g.Grapheme,
				}
			}
			caseMap["gaps"] = gaps
		}
		caseList[i] = caseMap
	}

	return map[string]any{
		"scenario": r.Scenario,
		"language": r.Language,
		"cases":    caseList,
	}
}

// RunWithGolden executes a scenario and compares the renditions against
// a golden file. The golden file is stored in
// testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected renditions:
// a rule table edit that changes any pinned pronunciation shows up as
// a golden diff even when the scenario's own expectations still hold.
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the renditions don't match the golden file.
func RunWithGolden(t *testing.T, h *Harness, scenario *Scenario) error {
	t.Helper()

	result, err := h.Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares a result's renditions against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result without re-running.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	canonicalMap := resultToCanonicalMap(result)
	reportJSON, err := ruleset.MarshalCanonical(canonicalMap)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, reportJSON)

	return nil
}
