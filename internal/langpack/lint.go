package langpack

import (
	"fmt"
	"strings"
)

// Lint warning codes (W001-W099)
const (
	WarnShadowedRule = "W001" // rule can never fire behind an earlier rule
)

// LintWarning reports a rule that is structurally unreachable.
type LintWarning struct {
	Code    string `json:"code"`
	Rule    int    `json:"rule"` // index of the unreachable rule
	By      int    `json:"by"`   // index of the earlier rule that wins
	Message string `json:"message"`
}

func (w LintWarning) String() string {
	return fmt.Sprintf("[%s] rule %d: %s", w.Code, w.Rule, w.Message)
}

// Lint reports rules that can never fire given declaration order.
//
// A later literal rule is unreachable when an earlier rule is literal,
// unconditional, and matches a prefix of the later rule's pattern: the
// earlier rule scans first and wins at every position the later one
// could fire. Regex rules and rules guarded by a left context are not
// analyzed; whether they fire depends on input.
//
// Only the first shadowing rule is reported per unreachable rule.
func Lint(p *Pack) []LintWarning {
	var warnings []LintWarning

	for j := 1; j < len(p.Rules); j++ {
		later := p.Rules[j]
		if later.Regex || later.Match == "" {
			continue
		}

		for i := 0; i < j; i++ {
			earlier := p.Rules[i]
			if earlier.Regex || earlier.When != "" || earlier.Match == "" {
				continue
			}
			if strings.HasPrefix(later.Match, earlier.Match) {
				warnings = append(warnings, LintWarning{
					Code: WarnShadowedRule,
					Rule: j,
					By:   i,
					Message: fmt.Sprintf("rule %d %q can never fire: rule %d %q always matches first",
						j, later.Match, i, earlier.Match),
				})
				break
			}
		}
	}

	return warnings
}
