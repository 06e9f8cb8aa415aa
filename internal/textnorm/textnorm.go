// Package textnorm normalizes orthographic input before rule matching.
//
// Tables are authored against folded, NFC-composed text: one grapheme is
// one rune sequence regardless of the case or decomposition the caller
// typed. Folding is full Unicode case folding, so ß becomes ss and every
// Greek sigma, final or not, becomes σ.
package textnorm

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold case-folds s and composes the result to NFC.
//
// Transcriber entry points fold before the engine runs; the engine
// assumes its input is already folded. A fresh Caser is built per call
// because cases.Caser is stateful and not safe for concurrent use.
func Fold(s string) string {
	return norm.NFC.String(cases.Fold().String(s))
}
