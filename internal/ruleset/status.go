package ruleset

import "fmt"

// Status describes the maturity of a language table. It is metadata for
// callers and test triage; engine behavior never branches on it.
type Status string

const (
	// StatusNotStarted marks a table that is a placeholder only.
	StatusNotStarted Status = "not-started"

	// StatusInProgress marks a table with known coverage gaps.
	StatusInProgress Status = "in-progress"

	// StatusComplete marks a table believed to cover its orthography.
	StatusComplete Status = "complete"
)

// ValidStatuses defines allowed status values.
var ValidStatuses = map[Status]bool{
	StatusNotStarted: true,
	StatusInProgress: true,
	StatusComplete:   true,
}

// ParseStatus converts a string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !ValidStatuses[st] {
		return "", fmt.Errorf("unknown status %q (want %q, %q, or %q)",
			s, StatusNotStarted, StatusInProgress, StatusComplete)
	}
	return st, nil
}
