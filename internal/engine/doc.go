// Package engine implements the grapheme rewrite loop shared by every
// language table.
//
// The engine walks a folded input string against an ordered rule table
// and produces one phonemic output per declared dialect variant in a
// single pass.
//
// ARCHITECTURE:
//
// Anchored scan, first match wins:
// Every cycle scans the table from rule zero in declaration order and
// applies the first rule whose left context and pattern both hold at the
// cursor. There is no backtracking, no longest-match preference, and no
// forward search. Coverage of every position is guaranteed because each
// cycle either applies a rule (consuming at least one rune) or falls
// back (consuming exactly one); nothing is ever skipped invisibly.
//
// Cycle anatomy:
//  1. Evaluate rules in declaration order at the cursor
//  2. Matched: append the shared segment, or one alternative per
//     variant, to the accumulators; advance by the rule's consume
//  3. Unmatched: copy one rune through every accumulator, record a Gap
//  4. Repeat until the input is exhausted, then close the delimiters
//
// The scan restarts at rule zero after every application because the
// consumed prefix changes, and a rule that lost earlier may now be
// eligible through its left context.
//
// The engine is a pure function of its inputs: no store, no clock, no
// shared mutable state. Concurrent calls against the same table are safe
// because tables are immutable and every call owns its accumulators.
//
// INVARIANTS:
//
// Declaration order is the sole priority mechanism and is never
// disturbed. Every accumulator receives exactly one append per cycle, so
// all variants always hold equal segment counts. The sum of consumes
// across cycles equals the input rune length. Table defects (consume out
// of range, arity mismatch) fail the call synchronously with a
// *DefectError; unmatched input never does.
package engine
