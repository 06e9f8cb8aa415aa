package lang

import (
	"github.com/roach88/ipaglot/internal/engine"
	"github.com/roach88/ipaglot/internal/ruleset"
	"github.com/roach88/ipaglot/internal/textnorm"
)

// Transcriber is a language bound to its compiled rule table and an
// engine. It is the one entry point callers need: raw text in, IPA
// renditions out.
//
// Thread-safety: a Transcriber is immutable after catalog construction
// and safe for concurrent use.
type Transcriber struct {
	Code     string
	Name     string
	Status   ruleset.Status
	Variants []string

	table *ruleset.Table
	eng   *engine.Engine
}

// Transcribe normalizes raw text (Unicode case folding, then NFC) and
// runs it through the language's rule table. One rendition per variant.
func (t *Transcriber) Transcribe(raw string) (*engine.Result, error) {
	return t.eng.Transcribe(t.table, t.Variants, textnorm.Fold(raw))
}

// Table returns the compiled rule table.
func (t *Transcriber) Table() *ruleset.Table {
	return t.table
}

// Fingerprint returns the content hash of the rule table. Stable across
// processes; used for audit provenance and golden stability.
func (t *Transcriber) Fingerprint() string {
	return ruleset.MustFingerprint(t.table)
}
