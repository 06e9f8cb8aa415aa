package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ipaglot/internal/ruleset"
)

// RulesOptions holds flags for the rules command.
type RulesOptions struct {
	*RootOptions
	Lang    string
	PackDir string
}

// RulesResult is the JSON payload for the rules command.
type RulesResult struct {
	Lang        string         `json:"lang"`
	Variants    []string       `json:"variants"`
	Fingerprint string         `json:"fingerprint"`
	Rules       []ruleset.Rule `json:"rules"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RulesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Dump a language's rule table",
		Long: `Dump a language's rule table in declared order.

Rule order is semantics: earlier rules win ties, so the listing shows
exactly the precedence the engine applies. Useful when a transcription
picks an unexpected rule and you need to see what outranked what.

Examples:
  ipaglot rules --lang es
  ipaglot rules --lang zz --pack ./packs
  ipaglot rules --lang el --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lang, "lang", "", "language code (see 'ipaglot languages')")
	cmd.Flags().StringVar(&opts.PackDir, "pack", "", "load packs from a directory instead of the built-ins")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func runRules(opts *RulesOptions, cmd *cobra.Command) error {
	catalog, err := buildCatalog(opts.PackDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load packs", err)
	}

	tr, err := catalog.Lookup(opts.Lang)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown language", err)
	}

	result := RulesResult{
		Lang:        tr.Code,
		Variants:    tr.Variants,
		Fingerprint: tr.Fingerprint(),
		Rules:       tr.Table().Rules(),
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: result})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Rules for %s (%s), table %s\n\n",
		result.Lang, strings.Join(result.Variants, ", "), shortHash(result.Fingerprint))
	fmt.Fprintf(w, "  %4s  %-16s %-16s %7s  %s\n", "IDX", "WHEN", "MATCH", "CONSUME", "OUT")
	for i, r := range result.Rules {
		fmt.Fprintf(w, "  %4d  %-16s %-16s %7s  %s\n",
			i, formatWhen(r), formatMatch(r), formatConsume(r), formatOut(r))
	}
	return nil
}

// formatWhen renders the left-context guard, "-" when absent.
func formatWhen(r ruleset.Rule) string {
	if r.When == "" {
		return "-"
	}
	return fmt.Sprintf("%q", r.When)
}

// formatMatch quotes literal patterns and slashes regex patterns.
func formatMatch(r ruleset.Rule) string {
	if r.Regex {
		return "/" + r.Match + "/"
	}
	return fmt.Sprintf("%q", r.Match)
}

// formatConsume renders an explicit consume count, "-" for match length.
func formatConsume(r ruleset.Rule) string {
	if r.Consume == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", r.Consume)
}

// formatOut joins output segments, one per variant when diverging.
func formatOut(r ruleset.Rule) string {
	parts := make([]string, len(r.Out))
	for i, out := range r.Out {
		parts[i] = fmt.Sprintf("%q", out)
	}
	return strings.Join(parts, " | ")
}
