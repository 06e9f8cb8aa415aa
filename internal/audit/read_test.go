package audit

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/roach88/ipaglot/internal/engine"
)

func TestRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Run(context.Background(), "nonexistent")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestGapsForRun_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	// Run exists but has no gaps
	run := createTestRun("run-clean", "eo")
	if _, err := s.RecordRun(context.Background(), run, nil); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	gaps, err := s.GapsForRun(context.Background(), "run-clean")
	if err != nil {
		t.Fatalf("GapsForRun() failed: %v", err)
	}
	if gaps == nil {
		t.Error("gaps = nil, want empty slice")
	}
	if len(gaps) != 0 {
		t.Errorf("gaps = %v, want empty", gaps)
	}

	// Unknown token also yields empty, not an error
	gaps, err = s.GapsForRun(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("GapsForRun() on unknown token failed: %v", err)
	}
	if gaps == nil || len(gaps) != 0 {
		t.Errorf("gaps = %v, want empty slice", gaps)
	}
}

func TestGapsForRun_OrderedByPos(t *testing.T) {
	s := createTestStore(t)

	run := createTestRun("run-123", "fi")
	// Deliberately unsorted insert order
	gaps := []engine.Gap{
		{Pos: 5, Grapheme: "c"},
		{Pos: 1, Grapheme: "a"},
		{Pos: 3, Grapheme: "b"},
	}
	if _, err := s.RecordRun(context.Background(), run, gaps); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := s.GapsForRun(context.Background(), run.Token)
	if err != nil {
		t.Fatalf("GapsForRun() failed: %v", err)
	}

	want := []engine.Gap{
		{Pos: 1, Grapheme: "a"},
		{Pos: 3, Grapheme: "b"},
		{Pos: 5, Grapheme: "c"},
	}
	if len(got) != len(want) {
		t.Fatalf("gaps = %v, want %v", got, want)
	}
	for i := 0; i < len(want); i++ {
		if got[i] != want[i] {
			t.Errorf("gaps[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSummary_OrderedByCountThenGrapheme(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-1", "es")
	gaps := []engine.Gap{
		{Pos: 0, Grapheme: "x"},
		{Pos: 1, Grapheme: "x"},
		{Pos: 2, Grapheme: "x"},
		{Pos: 3, Grapheme: "b"},
		{Pos: 4, Grapheme: "a"},
	}
	if _, err := s.RecordRun(ctx, run, gaps); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := s.Summary(ctx, "es")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}

	// Highest count first; ties broken by grapheme ascending
	want := []GapCount{
		{Grapheme: "x", Count: 3},
		{Grapheme: "a", Count: 1},
		{Grapheme: "b", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("summary = %v, want %v", got, want)
	}
	for i := 0; i < len(want); i++ {
		if got[i] != want[i] {
			t.Errorf("summary[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSummary_SumsAcrossTableHashes(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run1 := createTestRun("run-1", "el")
	run1.TableHash = "hash-old"
	run2 := createTestRun("run-2", "el")
	run2.TableHash = "hash-new"

	gap := []engine.Gap{{Pos: 0, Grapheme: "x"}}
	if _, err := s.RecordRun(ctx, run1, gap); err != nil {
		t.Fatalf("RecordRun() run-1 failed: %v", err)
	}
	if _, err := s.RecordRun(ctx, run2, gap); err != nil {
		t.Fatalf("RecordRun() run-2 failed: %v", err)
	}

	got, err := s.Summary(ctx, "el")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("summary rows = %d, want 1", len(got))
	}
	if got[0].Grapheme != "x" || got[0].Count != 2 {
		t.Errorf("summary[0] = %v, want {x 2}", got[0])
	}
}

func TestSummary_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	got, err := s.Summary(context.Background(), "zz")
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if got == nil {
		t.Error("summary = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("summary = %v, want empty", got)
	}
}

func TestTotals_GroupsByLang(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	runs := []Run{
		createTestRun("run-1", "fi"),
		createTestRun("run-2", "eo"),
		createTestRun("run-3", "eo"),
	}
	for _, r := range runs {
		if _, err := s.RecordRun(ctx, r, nil); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", r.Token, err)
		}
	}

	got, err := s.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}

	// Ordered by lang ascending; fallbacks summed per lang
	want := []LangTotal{
		{Lang: "eo", Runs: 2, Fallbacks: 4},
		{Lang: "fi", Runs: 1, Fallbacks: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("totals = %v, want %v", got, want)
	}
	for i := 0; i < len(want); i++ {
		if got[i] != want[i] {
			t.Errorf("totals[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTotals_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	got, err := s.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals() failed: %v", err)
	}
	if got == nil {
		t.Error("totals = nil, want empty slice")
	}
}
