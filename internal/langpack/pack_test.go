package langpack

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ipaglot/internal/ruleset"
)

func TestCompilePackBasic(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code:   "es"
			name:   "Spanish"
			status: "complete"
			variants: ["castilian", "latin-american"]
			rules: [
				{match: "ch", out: "tʃ"},
				{match: "z", out: ["θ", "s"]},
				{match: "a", out: "a"},
			]
		}
	`)

	require.NoError(t, v.Err())
	packVal := v.LookupPath(cue.ParsePath("language"))

	pack, err := CompilePack(packVal)
	require.NoError(t, err)

	assert.Equal(t, "es", pack.Code)
	assert.Equal(t, "Spanish", pack.Name)
	assert.Equal(t, ruleset.StatusComplete, pack.Status)
	assert.Equal(t, []string{"castilian", "latin-american"}, pack.Variants)
	require.Len(t, pack.Rules, 3)
	assert.Equal(t, "ch", pack.Rules[0].Match)
	assert.Equal(t, []string{"tʃ"}, pack.Rules[0].Out)
	assert.Equal(t, []string{"θ", "s"}, pack.Rules[1].Out)
}

func TestCompilePackDefaults(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "eo"
			name: "Esperanto"
			rules: [{match: "a", out: "a"}]
		}
	`)

	require.NoError(t, v.Err())
	pack, err := CompilePack(v.LookupPath(cue.ParsePath("language")))
	require.NoError(t, err)

	// Absent status and variants take defaults
	assert.Equal(t, ruleset.StatusInProgress, pack.Status)
	assert.Equal(t, []string{"default"}, pack.Variants)
}

func TestCompilePackRuleOrderPreserved(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "xx"
			name: "Order Test"
			rules: [
				{match: "sch", out: "ʃ"},
				{match: "sc", out: "sk"},
				{match: "s", out: "s"},
				{match: "c", out: "k"},
			]
		}
	`)

	require.NoError(t, v.Err())
	pack, err := CompilePack(v.LookupPath(cue.ParsePath("language")))
	require.NoError(t, err)

	// Declared order is priority; nothing may reorder it
	matches := make([]string, len(pack.Rules))
	for i, r := range pack.Rules {
		matches[i] = r.Match
	}
	assert.Equal(t, []string{"sch", "sc", "s", "c"}, matches)
}

func TestCompilePackWhenRegexConsume(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "fi"
			name: "Finnish"
			rules: [
				{when: "n$", match: "k", regex: false, out: "k"},
				{match: "aa|oo|uu", regex: true, out: "ː", consume: 2},
				{match: "nk", out: "ŋ", consume: 1},
			]
		}
	`)

	require.NoError(t, v.Err())
	pack, err := CompilePack(v.LookupPath(cue.ParsePath("language")))
	require.NoError(t, err)
	require.Len(t, pack.Rules, 3)

	assert.Equal(t, "n$", pack.Rules[0].When)
	assert.False(t, pack.Rules[0].Regex)
	assert.Equal(t, 0, pack.Rules[0].Consume)

	assert.True(t, pack.Rules[1].Regex)
	assert.Equal(t, 2, pack.Rules[1].Consume)

	assert.Equal(t, "nk", pack.Rules[2].Match)
	assert.Equal(t, 1, pack.Rules[2].Consume)
}

func TestCompilePackMissingCode(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			name: "No Code"
			rules: [{match: "a", out: "a"}]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "code")
	assert.Contains(t, err.Error(), "required")
}

func TestCompilePackMissingName(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "xx"
			rules: [{match: "a", out: "a"}]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "required")
}

func TestCompilePackMissingRules(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "xx"
			name: "No Rules"
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules")
	assert.Contains(t, err.Error(), "required")
}

func TestCompilePackEmptyRules(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "xx"
			name: "Empty Rules"
			rules: []
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one rule")
}

func TestCompilePackInvalidStatus(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code:   "xx"
			name:   "Bad Status"
			status: "done"
			rules: [{match: "a", out: "a"}]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "status", compileErr.Field)
}

func TestCompilePackRuleMissingMatch(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "xx"
			name: "Bad Rule"
			rules: [
				{match: "a", out: "a"},
				{out: "b"},
			]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules[1].match")
}

func TestCompilePackRuleMissingOut(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "xx"
			name: "Bad Rule"
			rules: [{match: "a"}]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules[0].out")
	assert.Contains(t, err.Error(), "required")
}

func TestCompilePackRuleOutWrongType(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		language: {
			code: "xx"
			name: "Bad Out"
			rules: [{match: "a", out: 42}]
		}
	`)

	require.NoError(t, v.Err())
	_, err := CompilePack(v.LookupPath(cue.ParsePath("language")))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out")
}

func TestCompileErrorIncludesPosition(t *testing.T) {
	_, err := Compile("bad.cue", []byte(`
		language: {
			code: "xx"
			rules: [{match: "a", out: "a"}]
		}
	`))

	require.Error(t, err)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "name", compileErr.Field)
	assert.Contains(t, err.Error(), "bad.cue")
}
