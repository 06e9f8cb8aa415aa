package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/ipaglot/internal/engine"
)

// GapCount is one row of a per-language gap summary: a grapheme and the
// total number of fallback copies recorded for it.
type GapCount struct {
	Grapheme string `json:"grapheme"`
	Count    int    `json:"count"`
}

// LangTotal aggregates the runs table for one language.
type LangTotal struct {
	Lang      string `json:"lang"`
	Runs      int    `json:"runs"`
	Fallbacks int    `json:"fallbacks"`
}

// Run retrieves a single run record by token.
// Returns sql.ErrNoRows if not found.
func (s *Store) Run(ctx context.Context, token string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, lang, table_hash, engine_version, input_runes, cycles, fallbacks, created_at
		FROM runs
		WHERE token = ?
	`, token)

	var run Run
	var createdAt string
	err := row.Scan(
		&run.Token,
		&run.Lang,
		&run.TableHash,
		&run.EngineVersion,
		&run.InputRunes,
		&run.Cycles,
		&run.Fallbacks,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	return run, nil
}

// GapsForRun returns the gap rows for a run token ordered by position.
//
// Returns an empty slice (not nil) if the run has no gaps or does not exist.
func (s *Store) GapsForRun(ctx context.Context, token string) ([]engine.Gap, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pos, grapheme
		FROM gaps
		WHERE run_token = ?
		ORDER BY pos ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query gaps: %w", err)
	}
	defer rows.Close()

	var gaps []engine.Gap
	for rows.Next() {
		var g engine.Gap
		if err := rows.Scan(&g.Pos, &g.Grapheme); err != nil {
			return nil, fmt.Errorf("scan gap: %w", err)
		}
		gaps = append(gaps, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gaps: %w", err)
	}

	// Return empty slice instead of nil
	if gaps == nil {
		gaps = []engine.Gap{}
	}

	return gaps, nil
}

// Summary returns the aggregate gap tally for a language, summed across
// table fingerprints. Ordered by count DESC, then grapheme ASC so the
// report is deterministic when counts tie.
//
// Returns an empty slice (not nil) if the language has no recorded gaps.
func (s *Store) Summary(ctx context.Context, lang string) ([]GapCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT grapheme, SUM(count)
		FROM gap_tally
		WHERE lang = ?
		GROUP BY grapheme
		ORDER BY SUM(count) DESC, grapheme ASC
	`, lang)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var counts []GapCount
	for rows.Next() {
		var gc GapCount
		if err := rows.Scan(&gc.Grapheme, &gc.Count); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		counts = append(counts, gc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}

	// Return empty slice instead of nil
	if counts == nil {
		counts = []GapCount{}
	}

	return counts, nil
}

// Totals aggregates the runs table per language, ordered by language code.
//
// Returns an empty slice (not nil) when the store has no runs.
func (s *Store) Totals(ctx context.Context) ([]LangTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lang, COUNT(*), SUM(fallbacks)
		FROM runs
		GROUP BY lang
		ORDER BY lang ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	var totals []LangTotal
	for rows.Next() {
		var lt LangTotal
		if err := rows.Scan(&lt.Lang, &lt.Runs, &lt.Fallbacks); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		totals = append(totals, lt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}

	// Return empty slice instead of nil
	if totals == nil {
		totals = []LangTotal{}
	}

	return totals, nil
}
