package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ipaglot/internal/audit"
)

// AuditOptions holds flags for the audit command.
type AuditOptions struct {
	*RootOptions
	Database string
	Lang     string
}

// AuditSummary is the JSON payload for one language's gap tally.
type AuditSummary struct {
	Lang string           `json:"lang"`
	Gaps []audit.GapCount `json:"gaps"`
}

// AuditTotals is the JSON payload for the per-language rollup.
type AuditTotals struct {
	Langs []audit.LangTotal `json:"langs"`
}

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report coverage gaps recorded by transcribe",
		Long: `Report coverage gaps recorded by 'transcribe --audit-db'.

Without --lang, shows per-language run and fallback totals. With
--lang, shows that language's gap tally: each grapheme no rule covered
and how often it was hit, worst first. The tally is what tells you
which rule to write next.

Examples:
  ipaglot audit --db gaps.db
  ipaglot audit --db gaps.db --lang es
  ipaglot audit --db gaps.db --lang es --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite audit database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Lang, "lang", "", "show the gap tally for one language")

	return cmd
}

func runAudit(opts *AuditOptions, cmd *cobra.Command) error {
	// Opening a SQLite path creates it; a report must not
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("audit database not found: %s", opts.Database))
	}

	st, err := audit.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open audit database", err)
	}
	defer st.Close()

	ctx := cmd.Context()

	if opts.Lang != "" {
		gaps, err := st.Summary(ctx, opts.Lang)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read gap tally", err)
		}
		return outputAuditSummary(cmd, opts, AuditSummary{Lang: opts.Lang, Gaps: gaps})
	}

	langs, err := st.Totals(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read totals", err)
	}
	return outputAuditTotals(cmd, opts, AuditTotals{Langs: langs})
}

// outputAuditSummary renders one language's gap tally.
func outputAuditSummary(cmd *cobra.Command, opts *AuditOptions, summary AuditSummary) error {
	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: summary})
	}

	w := cmd.OutOrStdout()
	if len(summary.Gaps) == 0 {
		fmt.Fprintf(w, "No gaps recorded for %s\n", summary.Lang)
		return nil
	}

	fmt.Fprintf(w, "Gap tally for %s (%d distinct graphemes)\n", summary.Lang, len(summary.Gaps))
	fmt.Fprintf(w, "  %-12s %6s\n", "GRAPHEME", "COUNT")
	for _, g := range summary.Gaps {
		fmt.Fprintf(w, "  %-12q %6d\n", g.Grapheme, g.Count)
	}
	return nil
}

// outputAuditTotals renders the per-language rollup.
func outputAuditTotals(cmd *cobra.Command, opts *AuditOptions, totals AuditTotals) error {
	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: totals})
	}

	w := cmd.OutOrStdout()
	if len(totals.Langs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}

	fmt.Fprintf(w, "  %-6s %8s %10s\n", "LANG", "RUNS", "FALLBACKS")
	for _, t := range totals.Langs {
		fmt.Fprintf(w, "  %-6s %8d %10d\n", t.Lang, t.Runs, t.Fallbacks)
	}
	return nil
}
