// Package audit provides SQLite-backed persistence for transcription
// coverage diagnostics.
//
// Every recorded run captures which graphemes fell through the rule table
// (fallback copies), so pack authors can rank missing rules by how often
// real input hits them:
//   - Runs: one row per transcription (token, language, table fingerprint,
//     cycle and fallback counters, timestamp)
//   - Gaps: per-run fallback positions and graphemes
//   - Gap Tally: aggregate fallback counts per (language, table, grapheme)
//
// # Write Semantics
//
// Writes are transactional and idempotent per run token. Re-recording a
// token is a no-op: the runs insert uses ON CONFLICT DO NOTHING, and the
// gap rows and tally increments are skipped when the run already exists,
// so tallies are never double counted.
//
// # Deterministic Reads
//
// Every multi-row query carries a total ORDER BY (pos ASC for gaps,
// count DESC then grapheme ASC for tallies) so reports are byte-stable
// across runs and platforms.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Run tokens come from a TokenGenerator (UUIDv7 in production, a fixed
// sequence in tests). Table fingerprints are computed in internal/ruleset
// using RFC 8785 canonical JSON and SHA-256 with domain separation.
package audit
