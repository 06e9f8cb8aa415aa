package langpack

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/ipaglot/internal/ruleset"
)

// Pack is a compiled language pack: the rule list plus the metadata the
// catalog and CLI surface. Rules keep their declared order; nothing here
// is sorted.
type Pack struct {
	Code     string
	Name     string
	Status   ruleset.Status
	Variants []string
	Rules    []ruleset.Rule
}

// CompilePack parses a CUE value into a Pack.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the language struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`language: { code: "eo", ... }`)
//	pack, err := CompilePack(v.LookupPath(cue.ParsePath("language")))
func CompilePack(v cue.Value) (*Pack, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pack := &Pack{}

	// Parse code (required)
	codeVal := v.LookupPath(cue.ParsePath("code"))
	if !codeVal.Exists() {
		return nil, &CompileError{
			Field:   "code",
			Message: "code is required",
			Pos:     v.Pos(),
		}
	}
	code, err := codeVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	pack.Code = code

	// Parse name (required)
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{
			Field:   "name",
			Message: "name is required",
			Pos:     v.Pos(),
		}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	pack.Name = name

	// Parse status (optional, defaults to in-progress)
	pack.Status = ruleset.StatusInProgress
	statusVal := v.LookupPath(cue.ParsePath("status"))
	if statusVal.Exists() {
		statusStr, err := statusVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		status, err := ruleset.ParseStatus(statusStr)
		if err != nil {
			return nil, &CompileError{
				Field:   "status",
				Message: err.Error(),
				Pos:     statusVal.Pos(),
			}
		}
		pack.Status = status
	}

	// Parse variants (optional, defaults to a single "default" variant)
	pack.Variants, err = parseVariants(v)
	if err != nil {
		return nil, err
	}

	// Parse rules (required, at least one)
	pack.Rules, err = parseRules(v)
	if err != nil {
		return nil, err
	}
	if len(pack.Rules) == 0 {
		return nil, &CompileError{
			Field:   "rules",
			Message: "at least one rule is required",
			Pos:     v.Pos(),
		}
	}

	return pack, nil
}

// parseVariants extracts the variant label list from the pack.
func parseVariants(v cue.Value) ([]string, error) {
	variantsVal := v.LookupPath(cue.ParsePath("variants"))
	if !variantsVal.Exists() {
		return []string{"default"}, nil
	}

	iter, err := variantsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	variants := []string{}
	for iter.Next() {
		label, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("variants[%d]", len(variants)),
				Message: "variant label must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		variants = append(variants, label)
	}

	return variants, nil
}

// parseRules extracts rule definitions from the pack in declared order.
func parseRules(v cue.Value) ([]ruleset.Rule, error) {
	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, &CompileError{
			Field:   "rules",
			Message: "rules is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := rulesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var rules []ruleset.Rule
	for iter.Next() {
		rule, err := parseRule(iter.Value(), len(rules))
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// parseRule extracts a single rule. idx is used only for error context.
func parseRule(v cue.Value, idx int) (ruleset.Rule, error) {
	var rule ruleset.Rule

	// Parse match (required string field)
	matchVal := v.LookupPath(cue.ParsePath("match"))
	if !matchVal.Exists() {
		return rule, &CompileError{
			Field:   fmt.Sprintf("rules[%d].match", idx),
			Message: "match is required",
			Pos:     v.Pos(),
		}
	}
	match, err := matchVal.String()
	if err != nil {
		return rule, &CompileError{
			Field:   fmt.Sprintf("rules[%d].match", idx),
			Message: "match must be a string",
			Pos:     matchVal.Pos(),
		}
	}
	rule.Match = match

	// Parse when (optional left-context pattern)
	whenVal := v.LookupPath(cue.ParsePath("when"))
	if whenVal.Exists() {
		when, err := whenVal.String()
		if err != nil {
			return rule, &CompileError{
				Field:   fmt.Sprintf("rules[%d].when", idx),
				Message: "when must be a string pattern",
				Pos:     whenVal.Pos(),
			}
		}
		rule.When = when
	}

	// Parse regex flag (optional, defaults to literal match)
	regexVal := v.LookupPath(cue.ParsePath("regex"))
	if regexVal.Exists() {
		regex, err := regexVal.Bool()
		if err != nil {
			return rule, &CompileError{
				Field:   fmt.Sprintf("rules[%d].regex", idx),
				Message: "regex must be a bool",
				Pos:     regexVal.Pos(),
			}
		}
		rule.Regex = regex
	}

	// Parse out (required) - a single string or a per-variant list
	outVal := v.LookupPath(cue.ParsePath("out"))
	if !outVal.Exists() {
		return rule, &CompileError{
			Field:   fmt.Sprintf("rules[%d].out", idx),
			Message: "out is required",
			Pos:     v.Pos(),
		}
	}
	rule.Out, err = parseOut(outVal, idx)
	if err != nil {
		return rule, err
	}

	// Parse consume (optional, defaults to the matched length)
	consumeVal := v.LookupPath(cue.ParsePath("consume"))
	if consumeVal.Exists() {
		consume, err := consumeVal.Int64()
		if err != nil {
			return rule, &CompileError{
				Field:   fmt.Sprintf("rules[%d].consume", idx),
				Message: "consume must be an int",
				Pos:     consumeVal.Pos(),
			}
		}
		rule.Consume = int(consume)
	}

	return rule, nil
}

// parseOut parses the output segments for a rule.
// Supports:
//   - Single string: one segment shared by every variant
//   - Array of strings: one segment per variant, in variant order
func parseOut(v cue.Value, idx int) ([]string, error) {
	// Try as string first (shared segment)
	if seg, err := v.String(); err == nil {
		return []string{seg}, nil
	}

	// Try as array
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   fmt.Sprintf("rules[%d].out", idx),
			Message: "out must be a string or a list of strings",
			Pos:     v.Pos(),
		}
	}

	var segments []string
	for iter.Next() {
		seg, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("rules[%d].out[%d]", idx, len(segments)),
				Message: "output segment must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
