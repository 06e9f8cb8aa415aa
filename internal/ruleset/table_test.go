package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableCopiesRules(t *testing.T) {
	rules := []Rule{
		{Match: "a", Out: []string{"a"}},
		{Match: "b", Out: []string{"b"}},
	}
	tab, err := NewTable(rules)
	require.NoError(t, err)

	// Mutating the caller's slice must not disturb declaration order.
	rules[0] = Rule{Match: "z", Out: []string{"z"}}
	assert.Equal(t, "a", tab.At(0).Match)
	assert.Equal(t, 2, tab.Len())
}

func TestNewTableCompileError(t *testing.T) {
	_, err := NewTable([]Rule{
		{Match: "a", Out: []string{"a"}},
		{Match: "c[", Regex: true, Out: []string{"x"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 1")

	_, err = NewTable([]Rule{
		{When: "[", Match: "a", Out: []string{"a"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "when")
}

func TestTableRulesReturnsCopy(t *testing.T) {
	tab, err := NewTable([]Rule{
		{Match: "a", Out: []string{"a"}},
		{Match: "b", Out: []string{"b"}},
	})
	require.NoError(t, err)

	rs := tab.Rules()
	rs[0].Match = "mutated"
	assert.Equal(t, "a", tab.At(0).Match)
}

func TestMustTablePanicsOnBadPattern(t *testing.T) {
	assert.Panics(t, func() {
		MustTable([]Rule{{Match: "(", Regex: true, Out: []string{"x"}}})
	})
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"complete", StatusComplete, false},
		{"in-progress", StatusInProgress, false},
		{"not-started", StatusNotStarted, false},
		{"done", "", true},
		{"", "", true},
		{"Complete", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
