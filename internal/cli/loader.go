package cli

import (
	"github.com/roach88/ipaglot/internal/lang"
	"github.com/roach88/ipaglot/internal/langpack"
)

// Error codes for command-level failures surfaced in JSON output.
const (
	ErrCodePackLoad    = "E_PACK_LOAD"    // pack directory missing or packs do not compile
	ErrCodeUnknownLang = "E_UNKNOWN_LANG" // catalog does not carry the requested code
	ErrCodeTableDefect = "E_TABLE_DEFECT" // a table defect surfaced while transcribing
	ErrCodeAuditDB     = "E_AUDIT_DB"     // audit database could not be opened or written
	ErrCodeNoInput     = "E_NO_INPUT"     // nothing to transcribe
	ErrCodeCheckFailed = "E_CHECK_FAILED" // pack validation or strict lint failure
	ErrCodeTestFailed  = "E_TEST_FAILED"  // one or more scenarios failed
)

// buildCatalog constructs the catalog a command operates on.
//
// With a pack directory the built-ins are hidden entirely, so a local
// pack set never silently falls back to a shipped table for a code it
// forgot to declare.
func buildCatalog(packDir string, extra ...lang.Option) (*lang.Catalog, error) {
	opts := make([]lang.Option, 0, len(extra)+2)
	if packDir != "" {
		packs, err := langpack.LoadDir(packDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lang.WithoutBuiltins(), lang.WithPacks(packs...))
	}
	opts = append(opts, extra...)
	return lang.NewCatalog(opts...)
}

// loadPacks returns the packs the check command inspects: the contents
// of dir, or the embedded built-ins when dir is empty.
func loadPacks(dir string) ([]*langpack.Pack, error) {
	if dir == "" {
		return lang.BuiltinPacks()
	}
	return langpack.LoadDir(dir)
}
