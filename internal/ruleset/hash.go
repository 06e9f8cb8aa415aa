package ruleset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainTable is the domain prefix for table fingerprints.
// The version suffix enables future algorithm migration.
const DomainTable = "ipaglot/table/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed identity of a table: the
// domain-separated SHA-256 of its canonical JSON form. Two tables with
// the same rules in the same order share a fingerprint; reordering,
// which changes matching behavior, changes it.
//
// Audit records carry the fingerprint so coverage gaps stay tied to the
// exact table revision that produced them.
func Fingerprint(t *Table) (string, error) {
	rules := make([]any, len(t.rules))
	for i := range t.rules {
		r := &t.rules[i]
		rules[i] = map[string]any{
			"when":    r.When,
			"match":   r.Match,
			"regex":   r.Regex,
			"out":     r.Out,
			"consume": r.Consume,
		}
	}
	obj := map[string]any{
		"format": PackFormatVersion,
		"rules":  rules,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTable, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when the table is known to be well formed.
func MustFingerprint(t *Table) string {
	fp, err := Fingerprint(t)
	if err != nil {
		panic(err)
	}
	return fp
}
