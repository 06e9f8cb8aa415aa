package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ipaglot/internal/langpack"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Strict bool
}

// PackReport holds the check outcome for one pack.
type PackReport struct {
	Code     string                     `json:"code"`
	Name     string                     `json:"name"`
	Rules    int                        `json:"rules"`
	Errors   []langpack.ValidationError `json:"errors,omitempty"`
	Warnings []langpack.LintWarning     `json:"warnings,omitempty"`
}

// CheckResult holds the overall check outcome.
type CheckResult struct {
	Valid    bool         `json:"valid"`
	Packs    []PackReport `json:"packs"`
	Errors   int          `json:"errors"`
	Warnings int          `json:"warnings"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check [pack-dir]",
		Short: "Validate and lint language packs",
		Long: `Validate and lint language packs without transcribing anything.

Compiles every pack, runs the semantic checks the catalog would apply,
and reports rules that can never fire because an earlier rule always
outranks them. With no directory the embedded built-in packs are
checked.

Exit codes:
  0 - All packs valid (warnings allowed unless --strict)
  1 - Validation errors, or warnings under --strict
  2 - Command error (directory not found, unreadable files)

Examples:
  ipaglot check
  ipaglot check ./packs
  ipaglot check ./packs --strict --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runCheck(opts, dir, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat lint warnings as failures")

	return cmd
}

func runCheck(opts *CheckOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	packs, err := loadPacks(dir)
	if err != nil {
		// A pack that does not compile is bad content, not a bad path
		var compileErr *langpack.CompileError
		if errors.As(err, &compileErr) {
			_ = formatter.Error(ErrCodeCheckFailed, err.Error(), nil)
			return WrapExitError(ExitFailure, "check failed", err)
		}
		_ = formatter.Error(ErrCodePackLoad, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load packs", err)
	}

	result := CheckResult{Valid: true}
	for _, p := range packs {
		formatter.VerboseLog("checking pack %s (%d rules)", p.Code, len(p.Rules))
		report := PackReport{
			Code:     p.Code,
			Name:     p.Name,
			Rules:    len(p.Rules),
			Errors:   langpack.Validate(p),
			Warnings: langpack.Lint(p),
		}
		result.Errors += len(report.Errors)
		result.Warnings += len(report.Warnings)
		result.Packs = append(result.Packs, report)
	}
	if result.Errors > 0 || (opts.Strict && result.Warnings > 0) {
		result.Valid = false
	}

	if opts.Format == "json" {
		return outputCheckJSON(cmd, result)
	}
	return outputCheckText(cmd, result)
}

// outputCheckJSON outputs the check result as JSON.
func outputCheckJSON(cmd *cobra.Command, result CheckResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.Valid {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeCheckFailed,
			Message: fmt.Sprintf("%d error(s), %d warning(s)", result.Errors, result.Warnings),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s), %d warning(s)", result.Errors, result.Warnings))
	}
	return nil
}

// outputCheckText outputs the check result as text.
func outputCheckText(cmd *cobra.Command, result CheckResult) error {
	w := cmd.OutOrStdout()

	for _, report := range result.Packs {
		if len(report.Errors) == 0 && len(report.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%s)\n", report.Code, report.Name)
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  %s\n", e.Error())
		}
		for _, warn := range report.Warnings {
			fmt.Fprintf(w, "  %s\n", warn.String())
		}
		fmt.Fprintln(w)
	}

	if !result.Valid {
		fmt.Fprintln(w, "✗ Check failed")
		return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s), %d warning(s)", result.Errors, result.Warnings))
	}

	if result.Warnings > 0 {
		fmt.Fprintf(w, "✓ %d pack(s) valid, %d warning(s)\n", len(result.Packs), result.Warnings)
		return nil
	}
	fmt.Fprintf(w, "✓ %d pack(s) valid\n", len(result.Packs))
	return nil
}
