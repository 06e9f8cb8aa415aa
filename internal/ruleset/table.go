package ruleset

import "fmt"

// Table is an ordered, immutable sequence of rules, fixed for the
// lifetime of a language transcriber.
//
// Order is the sole priority mechanism: the engine takes the first rule
// that matches structurally, with no backtracking and no preference for
// longer or more specific matches. Authors must therefore place
// digraphs, trigraphs and context-qualified forms before the general
// forms they would otherwise be shadowed by.
type Table struct {
	rules []Rule
}

// NewTable compiles rules into an immutable Table.
//
// The input slice is copied so later mutation by the caller cannot
// disturb declaration order. Regular expressions are compiled here; a
// malformed pattern fails construction. Consume and output arity are
// deliberately not validated here — tables are opaque data, and those
// defects are detected at the moment a rule is applied.
func NewTable(rules []Rule) (*Table, error) {
	rs := make([]Rule, len(rules))
	copy(rs, rules)
	for i := range rs {
		if err := rs[i].compile(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return &Table{rules: rs}, nil
}

// MustTable is like NewTable but panics on error.
// Use only in tests or when rules are known to be valid.
func MustTable(rules []Rule) *Table {
	t, err := NewTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// At returns a copy of the rule at index i, in declaration order.
func (t *Table) At(i int) Rule {
	return t.rules[i]
}

// Rules returns a copy of the rules in declaration order.
// Used for introspection (table dumps, lint); the copy keeps the
// table's own slice immutable.
func (t *Table) Rules() []Rule {
	rs := make([]Rule, len(t.rules))
	copy(rs, t.rules)
	return rs
}
