package langpack

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/ipaglot/internal/ruleset"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedType = "E100" // unsupported type for validation

	// Pack errors (E101-E109)
	ErrPackCodeInvalid   = "E101" // language code missing or malformed
	ErrPackNameEmpty     = "E102" // display name is required
	ErrPackStatusInvalid = "E103" // unknown status value
	ErrPackNoVariants    = "E104" // at least one variant label required
	ErrDuplicateVariant  = "E105" // duplicate variant label
	ErrPackNoRules       = "E106" // at least one rule required

	// Rule errors (E110-E119)
	ErrRuleMatchEmpty     = "E110" // empty match pattern
	ErrRuleNoOutput       = "E111" // rule must have output segments
	ErrRuleArityMismatch  = "E112" // output count is neither 1 nor variant count
	ErrRuleConsumeInvalid = "E113" // negative consume
	ErrRuleBadMatch       = "E114" // match pattern does not compile
	ErrRuleBadWhen        = "E115" // when pattern does not compile
)

// ValidationError represents a pack validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// langCodePattern matches lowercase language codes like "eo" or "pt-br".
var langCodePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// Validate validates a compiled pack against semantic rules.
// Returns all errors found (does not fail-fast).
//
// Validation is stricter than the engine: an output arity mismatch only
// defects at application time when the rule actually fires, but a pack
// carrying one is misauthored regardless, so it is rejected here.
func Validate(v any) []ValidationError {
	switch p := v.(type) {
	case *Pack:
		return validatePack(p)
	case Pack:
		return validatePack(&p)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported type: %T", v),
			Code:    ErrUnsupportedType,
		}}
	}
}

// validatePack validates a pack's metadata and every rule.
func validatePack(p *Pack) []ValidationError {
	var errs []ValidationError

	// E101: code must be present and well-formed
	if !langCodePattern.MatchString(p.Code) {
		errs = append(errs, ValidationError{
			Field:   "code",
			Message: fmt.Sprintf("invalid language code %q, expected lowercase like \"eo\" or \"pt-br\"", p.Code),
			Code:    ErrPackCodeInvalid,
		})
	}

	// E102: name is required
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required and must be non-empty",
			Code:    ErrPackNameEmpty,
		})
	}

	// E103: status must be a known value
	if !ruleset.ValidStatuses[p.Status] {
		errs = append(errs, ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("invalid status %q, must be \"not-started\", \"in-progress\", or \"complete\"", p.Status),
			Code:    ErrPackStatusInvalid,
		})
	}

	// E104: at least one variant label required
	if len(p.Variants) == 0 {
		errs = append(errs, ValidationError{
			Field:   "variants",
			Message: "at least one variant label is required",
			Code:    ErrPackNoVariants,
		})
	}

	// E105: variant labels must be unique
	seen := make(map[string]bool)
	for i, label := range p.Variants {
		if seen[label] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("variants[%d]", i),
				Message: fmt.Sprintf("duplicate variant label: %q", label),
				Code:    ErrDuplicateVariant,
			})
		}
		seen[label] = true
	}

	// E106: at least one rule required
	if len(p.Rules) == 0 {
		errs = append(errs, ValidationError{
			Field:   "rules",
			Message: "at least one rule is required",
			Code:    ErrPackNoRules,
		})
	}

	// Validate rules
	for i, rule := range p.Rules {
		errs = append(errs, validateRule(rule, i, len(p.Variants))...)
	}

	return errs
}

// validateRule validates a single rule at index i.
func validateRule(r ruleset.Rule, i, variantCount int) []ValidationError {
	var errs []ValidationError

	// E110: empty match would fire everywhere and consume nothing
	if r.Match == "" {
		errs = append(errs, ValidationError{
			Field:   fmt.Sprintf("rules[%d].match", i),
			Message: "match pattern must be non-empty",
			Code:    ErrRuleMatchEmpty,
		})
	}

	// E111: rule must emit something for each variant
	if len(r.Out) == 0 {
		errs = append(errs, ValidationError{
			Field:   fmt.Sprintf("rules[%d].out", i),
			Message: "rule must have at least one output segment",
			Code:    ErrRuleNoOutput,
		})
	}

	// E112: output count must be 1 (shared) or the variant count
	if variantCount > 0 && len(r.Out) > 1 && len(r.Out) != variantCount {
		errs = append(errs, ValidationError{
			Field:   fmt.Sprintf("rules[%d].out", i),
			Message: fmt.Sprintf("rule has %d output segments for %d variants, want 1 or %d", len(r.Out), variantCount, variantCount),
			Code:    ErrRuleArityMismatch,
		})
	}

	// E113: negative consume is always misauthored (0 means default)
	if r.Consume < 0 {
		errs = append(errs, ValidationError{
			Field:   fmt.Sprintf("rules[%d].consume", i),
			Message: fmt.Sprintf("consume must not be negative, got %d", r.Consume),
			Code:    ErrRuleConsumeInvalid,
		})
	}

	// E114: regex match patterns must compile
	if r.Regex {
		if _, err := regexp.Compile(r.Match); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("rules[%d].match", i),
				Message: fmt.Sprintf("invalid match pattern: %v", err),
				Code:    ErrRuleBadMatch,
			})
		}
	}

	// E115: when patterns are always regexes and must compile
	if r.When != "" {
		if _, err := regexp.Compile(r.When); err != nil {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("rules[%d].when", i),
				Message: fmt.Sprintf("invalid when pattern: %v", err),
				Code:    ErrRuleBadWhen,
			})
		}
	}

	return errs
}
