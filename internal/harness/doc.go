// Package harness provides conformance testing for language packs.
//
// The harness loads pronunciation scenarios from YAML, transcribes each
// case through a catalog transcriber, and checks the renditions and
// coverage gaps against the scenario's expectations.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario pins down"
//	language: es
//	cases:
//	  - input: zorro
//	    want:
//	      castilian: /θoro/
//	      latin-american: /soro/
//	  - input: hoy
//	    first: /oi/
//	  - input: kiwi
//	    first: /kiwi/
//	    gaps:
//	      - { pos: 0, grapheme: k }
//	      - { pos: 2, grapheme: w }
//
// Each case asserts on the rendition per variant label (want), on the
// first variant only (first), or both. Gap expectations are exact: a
// case with no gaps listed asserts a gap-free transcription unless it
// sets allow_gaps. A scenario may point at a pack directory instead of
// a built-in language:
//
//	language: xx
//	pack_dir: ./packs
//
// pack_dir is resolved relative to the scenario file, and the packs it
// contains replace the built-in catalog for that scenario.
//
// # Deterministic Testing
//
// Transcription is a pure function of the rule table and the folded
// input, so scenario results are reproducible by construction. Golden
// snapshots serialize results as canonical JSON, which keeps the files
// byte-stable across runs and platforms.
//
// # Usage
//
// Load and run one scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/spanish.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := h.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
//
// Or run a whole directory and aggregate:
//
//	suite, err := h.RunSuite("testdata/scenarios")
package harness
