package engine

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/roach88/ipaglot/internal/ruleset"
)

// Delimiters bracketing every phonemic output, per broad-transcription
// convention.
const (
	openDelimiter  = "/"
	closeDelimiter = "/"
)

// FallbackFunc decides the segment appended to every accumulator when no
// rule matches at the cursor. It receives the uncovered grapheme (one
// rune). The standard policy copies it through verbatim.
//
// The policy shapes only the emitted text: the cursor always advances by
// exactly one rune, and the gap diagnostic is recorded regardless.
type FallbackFunc func(grapheme string) string

// Engine is the rewrite loop shared by every language table.
//
// An Engine holds configuration only — no clock, no store, no per-call
// state — so a single value is safe for concurrent use. Each Transcribe
// call allocates its own accumulators and result.
type Engine struct {
	trace    bool
	fallback FallbackFunc
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithTrace enables per-cycle Step recording on results. Off by default;
// tracing roughly doubles the allocation per call.
func WithTrace() EngineOption {
	return func(e *Engine) {
		e.trace = true
	}
}

// WithFallback replaces the standard copy-through fallback policy.
func WithFallback(fn FallbackFunc) EngineOption {
	return func(e *Engine) {
		e.fallback = fn
	}
}

// New creates an Engine.
//
// Options can be passed to configure it (e.g. WithTrace).
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		fallback: func(grapheme string) string { return grapheme },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transcribe rewrites input against tab, producing one phonemic string
// per variant label, each bracketed with slash delimiters.
//
// The input is assumed already folded (see the textnorm package);
// transcriber entry points fold before calling here. tab must come from
// ruleset.NewTable and must not be nil; variants must hold at least one
// label.
//
// Transcribe is total over unmatched input — uncovered graphemes are
// copied through and reported as Gaps — and fails only on table defects,
// which return a *DefectError. Termination is guaranteed: every cycle
// consumes at least one rune.
func (e *Engine) Transcribe(tab *ruleset.Table, variants []string, input string) (*Result, error) {
	if len(variants) == 0 {
		return nil, &DefectError{
			Code:      DefectNoVariants,
			RuleIndex: -1,
			Message:   "at least one variant label is required",
		}
	}

	k := len(variants)
	accs := make([]strings.Builder, k)
	for i := range accs {
		accs[i].WriteString(openDelimiter)
	}

	res := &Result{}
	remaining := utf8.RuneCountInString(input)
	pos := 0     // byte offset into input
	runePos := 0 // rune offset, for diagnostics and trace

	for pos < len(input) {
		prefix, rest := input[:pos], input[pos:]
		res.Stats.Cycles++

		idx, matchRunes, evals := firstMatch(tab, prefix, rest)
		res.Stats.RuleEvals += evals

		if idx < 0 {
			// Fallback: no rule covers this grapheme. Unmatched input is
			// never an error; the gap record is the whole diagnosis.
			_, size := utf8.DecodeRuneInString(rest)
			gr := rest[:size]
			seg := e.fallback(gr)
			for i := range accs {
				accs[i].WriteString(seg)
			}
			res.Gaps = append(res.Gaps, Gap{Pos: runePos, Grapheme: gr})
			res.Stats.Fallbacks++
			slog.Debug("no rule matched, copied through",
				"pos", runePos,
				"grapheme", gr,
			)
			if e.trace {
				res.Trace = append(res.Trace, Step{
					Pos:      runePos,
					Rule:     -1,
					Matched:  gr,
					Consumed: 1,
					Fallback: true,
				})
			}
			pos += size
			runePos++
			remaining--
			continue
		}

		rule := tab.At(idx)
		consume := rule.Consume
		if consume == 0 {
			consume = matchRunes
		}
		if consume < 1 {
			return nil, newConsumeDefect(idx, runePos, consume)
		}
		if consume > remaining {
			return nil, newOverrunDefect(idx, runePos, consume, remaining)
		}

		// Variant expansion: one entry broadcasts, k entries map onto
		// the k accumulators in declaration order. Every accumulator
		// receives exactly one append per cycle.
		switch len(rule.Out) {
		case 1:
			for i := range accs {
				accs[i].WriteString(rule.Out[0])
			}
		case k:
			for i := range accs {
				accs[i].WriteString(rule.Out[i])
			}
		default:
			return nil, newArityDefect(idx, runePos, len(rule.Out), k)
		}

		if e.trace {
			res.Trace = append(res.Trace, Step{
				Pos:      runePos,
				Rule:     idx,
				Matched:  rest[:advanceBytes(rest, matchRunes)],
				Consumed: consume,
			})
		}

		pos += advanceBytes(rest, consume)
		runePos += consume
		remaining -= consume
	}

	res.Variants = make([]Variant, k)
	for i, label := range variants {
		accs[i].WriteString(closeDelimiter)
		res.Variants[i] = Variant{Label: label, Text: accs[i].String()}
	}
	res.Stats.Runes = runePos
	return res, nil
}
