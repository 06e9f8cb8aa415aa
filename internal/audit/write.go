package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/ipaglot/internal/engine"
	"github.com/roach88/ipaglot/internal/ruleset"
)

// Run is one recorded transcription run.
//
// TableHash is the fingerprint of the rule table the run executed against,
// so gap reports stay meaningful after a pack changes: tallies for an old
// table are keyed separately from tallies for the new one.
type Run struct {
	Token         string
	Lang          string
	TableHash     string
	EngineVersion string
	InputRunes    int
	Cycles        int
	Fallbacks     int
	CreatedAt     time.Time
}

// RecordRun inserts a run record and its gaps in a single transaction.
// Returns whether a new record was inserted.
//
// Uses ON CONFLICT(token) DO NOTHING for idempotency. When the token
// already exists the gaps and tally updates are skipped entirely, so
// re-recording a run never double counts.
//
// The caller sets CreatedAt; RecordResult stamps it from the store clock.
func (s *Store) RecordRun(ctx context.Context, run Run, gaps []engine.Gap) (inserted bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Step 1: Try to insert the run (claims the token atomically)
	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(token, lang, table_hash, engine_version, input_runes, cycles, fallbacks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		run.Token,
		run.Lang,
		run.TableHash,
		run.EngineVersion,
		run.InputRunes,
		run.Cycles,
		run.Fallbacks,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("record run: insert run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record run: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Token already recorded - nothing more to do
		if err := tx.Commit(); err != nil {
			return false, fmt.Errorf("record run: commit (existing): %w", err)
		}
		return false, nil
	}

	// Step 2: Write per-run gap rows. The token is fresh and the engine
	// emits at most one gap per position, so plain inserts cannot conflict.
	for _, g := range gaps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO gaps (run_token, pos, grapheme)
			VALUES (?, ?, ?)
		`, run.Token, g.Pos, g.Grapheme)
		if err != nil {
			return false, fmt.Errorf("record run: insert gap: %w", err)
		}
	}

	// Step 3: Bump the aggregate tally, one increment per gap occurrence
	for _, g := range gaps {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO gap_tally (lang, table_hash, grapheme, count)
			VALUES (?, ?, ?, 1)
			ON CONFLICT(lang, table_hash, grapheme) DO UPDATE SET count = count + 1
		`, run.Lang, run.TableHash, g.Grapheme)
		if err != nil {
			return false, fmt.Errorf("record run: update tally: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("record run: commit: %w", err)
	}

	return true, nil
}

// RecordResult records an engine result under a freshly minted token.
// Returns the token so callers can report it alongside the transcription.
//
// The run row is derived from the result's stats; the timestamp comes from
// the store clock (WithNowFunc) and is stored as RFC 3339 UTC.
func (s *Store) RecordResult(ctx context.Context, lang, tableHash string, res *engine.Result) (string, error) {
	token := s.tokens.Generate()
	run := Run{
		Token:         token,
		Lang:          lang,
		TableHash:     tableHash,
		EngineVersion: ruleset.EngineVersion,
		InputRunes:    res.Stats.Runes,
		Cycles:        res.Stats.Cycles,
		Fallbacks:     res.Stats.Fallbacks,
		CreatedAt:     s.now(),
	}

	if _, err := s.RecordRun(ctx, run, res.Gaps); err != nil {
		return "", fmt.Errorf("record result: %w", err)
	}
	return token, nil
}
