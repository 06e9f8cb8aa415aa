package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ipaglot/internal/audit"
	"github.com/roach88/ipaglot/internal/engine"
	"github.com/roach88/ipaglot/internal/lang"
)

// TranscribeOptions holds flags for the transcribe command.
type TranscribeOptions struct {
	*RootOptions
	Lang    string
	PackDir string
	Trace   bool
	AuditDB string
}

// Transcription is the report for one input line.
type Transcription struct {
	Input    string           `json:"input"`
	Variants []engine.Variant `json:"variants"`
	Gaps     []engine.Gap     `json:"gaps,omitempty"`
	Stats    engine.Stats     `json:"stats"`
	Trace    []engine.Step    `json:"trace,omitempty"`
	RunToken string           `json:"run_token,omitempty"`
}

// TranscribeResult is the overall payload for the transcribe command.
type TranscribeResult struct {
	Lang           string          `json:"lang"`
	Fingerprint    string          `json:"fingerprint"`
	Transcriptions []Transcription `json:"transcriptions"`
}

// NewTranscribeCommand creates the transcribe command.
func NewTranscribeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranscribeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "transcribe [text...]",
		Short: "Transcribe text to broad IPA",
		Long: `Transcribe text to broad IPA using a language's rule table.

Arguments are joined into a single input. With no arguments, lines are
read from stdin and transcribed one per line. Renditions go to stdout;
coverage gaps are reported on stderr and never fail the command.

Exit codes:
  0 - Transcription produced (gaps included)
  1 - Table defect encountered
  2 - Command error (unknown language, bad pack directory)

Examples:
  ipaglot transcribe --lang eo "eĥoŝanĝo ĉiuĵaŭde"
  ipaglot transcribe --lang es --trace zorro
  ipaglot transcribe --lang el --audit-db gaps.db "καλημέρα"
  cat corpus.txt | ipaglot transcribe --lang fi`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Lang, "lang", "", "language code (see 'ipaglot languages')")
	cmd.Flags().StringVar(&opts.PackDir, "pack", "", "load packs from a directory instead of the built-ins")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "record a step-by-step rule trace")
	cmd.Flags().StringVar(&opts.AuditDB, "audit-db", "", "record run stats and gaps to a SQLite database")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func runTranscribe(opts *TranscribeOptions, args []string, cmd *cobra.Command) error {
	// Set up logging; at debug level the engine reports each fallback
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var engOpts []lang.Option
	if opts.Trace {
		engOpts = append(engOpts, lang.WithEngineOptions(engine.WithTrace()))
	}

	catalog, err := buildCatalog(opts.PackDir, engOpts...)
	if err != nil {
		_ = formatter.Error(ErrCodePackLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load packs", err)
	}

	tr, err := catalog.Lookup(opts.Lang)
	if err != nil {
		_ = formatter.Error(ErrCodeUnknownLang, err.Error(), nil)
		return WrapExitError(ExitCommandError, "unknown language", err)
	}

	var store *audit.Store
	if opts.AuditDB != "" {
		store, err = audit.Open(opts.AuditDB)
		if err != nil {
			_ = formatter.Error(ErrCodeAuditDB, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open audit database", err)
		}
		defer store.Close()
	}

	inputs, err := collectInputs(args, cmd.InOrStdin())
	if err != nil {
		_ = formatter.Error(ErrCodeNoInput, err.Error(), nil)
		return WrapExitError(ExitCommandError, "no input", err)
	}

	result := TranscribeResult{
		Lang:           tr.Code,
		Fingerprint:    tr.Fingerprint(),
		Transcriptions: make([]Transcription, 0, len(inputs)),
	}

	for _, input := range inputs {
		res, err := tr.Transcribe(input)
		if err != nil {
			// A defect is a fault in the table, not the input; stop
			// rather than emit a truncated rendition
			_ = formatter.Error(ErrCodeTableDefect, err.Error(), nil)
			return WrapExitError(ExitFailure, fmt.Sprintf("table defect on input %q", input), err)
		}

		report := Transcription{
			Input:    input,
			Variants: res.Variants,
			Gaps:     res.Gaps,
			Stats:    res.Stats,
		}
		if opts.Trace {
			report.Trace = res.Trace
		}

		if store != nil {
			token, err := store.RecordResult(cmd.Context(), tr.Code, result.Fingerprint, res)
			if err != nil {
				_ = formatter.Error(ErrCodeAuditDB, err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to record audit run", err)
			}
			report.RunToken = token
			formatter.VerboseLog("recorded audit run %s", token)
		}

		result.Transcriptions = append(result.Transcriptions, report)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: result})
	}

	return outputTranscribeText(formatter, result, opts.Trace)
}

// collectInputs joins arguments into a single input, or reads one input
// per non-blank stdin line when there are no arguments.
func collectInputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var inputs []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input text (pass arguments or pipe lines on stdin)")
	}
	return inputs, nil
}

// outputTranscribeText writes renditions to stdout and diagnostics to
// stderr, so piped output stays one rendition per input.
func outputTranscribeText(formatter *OutputFormatter, result TranscribeResult, trace bool) error {
	w := formatter.Writer
	errW := formatter.GetErrWriter()

	multi := len(result.Transcriptions) > 1
	for _, t := range result.Transcriptions {
		prefix := ""
		if multi {
			prefix = t.Input + "\t"
		}

		if len(t.Variants) == 1 {
			fmt.Fprintf(w, "%s%s\n", prefix, t.Variants[0].Text)
		} else {
			for _, v := range t.Variants {
				fmt.Fprintf(w, "%s%s: %s\n", prefix, v.Label, v.Text)
			}
		}

		for _, g := range t.Gaps {
			fmt.Fprintf(errW, "gap: no rule for %q at rune %d in %q\n", g.Grapheme, g.Pos, t.Input)
		}

		if trace {
			writeTrace(errW, t)
		}
	}

	return nil
}

// writeTrace renders one cycle per line in input order.
func writeTrace(w io.Writer, t Transcription) {
	fmt.Fprintf(w, "trace for %q (%d cycles, %d rule evals):\n", t.Input, t.Stats.Cycles, t.Stats.RuleEvals)
	for _, s := range t.Trace {
		if s.Fallback {
			fmt.Fprintf(w, "  pos %-3d fallback copied %q\n", s.Pos, s.Matched)
			continue
		}
		fmt.Fprintf(w, "  pos %-3d rule %-3d matched %q consumed %d\n", s.Pos, s.Rule, s.Matched, s.Consumed)
	}
}
