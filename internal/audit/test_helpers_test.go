package audit

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new on-disk store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// frozenNow returns a fixed instant for deterministic created_at values.
func frozenNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

// createTestRun creates a run record with minimal required fields.
func createTestRun(token, lang string) Run {
	return Run{
		Token:         token,
		Lang:          lang,
		TableHash:     "hash-abc",
		EngineVersion: "0.1.0",
		InputRunes:    10,
		Cycles:        8,
		Fallbacks:     2,
		CreatedAt:     frozenNow(),
	}
}
