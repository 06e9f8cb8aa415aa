package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// LanguagesOptions holds flags for the languages command.
type LanguagesOptions struct {
	*RootOptions
	PackDir string
}

// LanguageInfo describes one catalog entry.
type LanguageInfo struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Variants    []string `json:"variants"`
	Rules       int      `json:"rules"`
	Fingerprint string   `json:"fingerprint"`
}

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LanguagesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages the catalog carries",
		Long: `List the languages the catalog carries.

Shows each language's code, display name, table status, variant labels,
rule count, and table fingerprint. The fingerprint changes whenever the
table's semantics change, so two builds showing the same fingerprint
transcribe identically.

Examples:
  ipaglot languages
  ipaglot languages --pack ./packs
  ipaglot languages --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguages(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.PackDir, "pack", "", "load packs from a directory instead of the built-ins")

	return cmd
}

func runLanguages(opts *LanguagesOptions, cmd *cobra.Command) error {
	catalog, err := buildCatalog(opts.PackDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load packs", err)
	}

	codes := catalog.Codes()
	infos := make([]LanguageInfo, 0, len(codes))
	for _, code := range codes {
		tr, err := catalog.Lookup(code)
		if err != nil {
			return WrapExitError(ExitCommandError, "catalog lookup failed", err)
		}
		infos = append(infos, LanguageInfo{
			Code:        tr.Code,
			Name:        tr.Name,
			Status:      string(tr.Status),
			Variants:    tr.Variants,
			Rules:       tr.Table().Len(),
			Fingerprint: tr.Fingerprint(),
		})
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: infos})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-6s %-20s %-13s %5s  %-12s  %s\n", "CODE", "NAME", "STATUS", "RULES", "TABLE", "VARIANTS")
	for _, info := range infos {
		fmt.Fprintf(w, "%-6s %-20s %-13s %5d  %-12s  %s\n",
			info.Code, info.Name, info.Status, info.Rules,
			shortHash(info.Fingerprint), strings.Join(info.Variants, ", "))
	}
	return nil
}

// shortHash truncates a table fingerprint for display.
func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
