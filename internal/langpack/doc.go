// Package langpack compiles declarative language pack definitions from CUE
// into rule data the transcription engine can execute.
//
// A pack is a single CUE file with a top-level language struct:
//
//	language: {
//		code:   "eo"
//		name:   "Esperanto"
//		status: "complete"
//		variants: ["default"]
//		rules: [
//			{match: "c", out: "ts"},
//			{when: "s", match: "h", out: "h", consume: 1},
//		]
//	}
//
// Rule order in the file is rule priority: the engine tries rules in
// declared order and the first match wins, so packs put digraphs and
// context-sensitive rules before the single letters they refine.
//
// The package is layered the same way specs flow through the system:
//
//  1. Compile/CompilePack - structural extraction from CUE (shape errors
//     fail fast with source positions)
//  2. Validate - semantic checks over the compiled pack (collects all
//     errors, stable E1xx codes)
//  3. Lint - reachability analysis (W0xx warnings for rules that can
//     never fire given declaration order)
//
// Loading from disk (LoadDir) compiles one pack per .cue file in sorted
// path order so directory results are deterministic.
package langpack
