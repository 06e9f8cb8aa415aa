package lang

import (
	"embed"
	"fmt"
	"sort"

	"github.com/roach88/ipaglot/internal/engine"
	"github.com/roach88/ipaglot/internal/langpack"
	"github.com/roach88/ipaglot/internal/ruleset"
)

//go:embed packs/*.cue
var builtinFS embed.FS

// Catalog maps language codes to ready-to-use transcribers. All packs
// are compiled, validated, and table-built at construction; lookups
// never do work.
//
// Thread-safety: a Catalog is immutable after NewCatalog and safe for
// concurrent use.
type Catalog struct {
	byCode map[string]*Transcriber
	codes  []string
}

// catalogConfig collects construction inputs before the catalog is built.
type catalogConfig struct {
	extra      []*langpack.Pack
	engineOpts []engine.EngineOption
	noBuiltins bool
}

// Option configures catalog construction.
type Option func(*catalogConfig)

// WithPacks adds compiled packs to the catalog. A pack whose code
// collides with a built-in replaces it, so callers can ship corrected
// tables without rebuilding the binary.
func WithPacks(packs ...*langpack.Pack) Option {
	return func(cfg *catalogConfig) {
		cfg.extra = append(cfg.extra, packs...)
	}
}

// WithEngineOptions configures the engine shared by every transcriber,
// e.g. engine.WithTrace() or a custom fallback policy.
func WithEngineOptions(opts ...engine.EngineOption) Option {
	return func(cfg *catalogConfig) {
		cfg.engineOpts = append(cfg.engineOpts, opts...)
	}
}

// WithoutBuiltins skips the embedded packs. The catalog then carries
// only packs passed via WithPacks.
func WithoutBuiltins() Option {
	return func(cfg *catalogConfig) {
		cfg.noBuiltins = true
	}
}

// NewCatalog builds a catalog from the embedded built-in packs plus any
// packs supplied via options. Every pack is validated and its table
// compiled; the first problem found fails construction.
func NewCatalog(opts ...Option) (*Catalog, error) {
	cfg := &catalogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var packs []*langpack.Pack
	if !cfg.noBuiltins {
		builtin, err := BuiltinPacks()
		if err != nil {
			return nil, err
		}
		packs = builtin
	}
	// Extra packs land after built-ins so same-code packs override
	packs = append(packs, cfg.extra...)

	eng := engine.New(cfg.engineOpts...)

	c := &Catalog{byCode: make(map[string]*Transcriber)}
	for _, pack := range packs {
		tr, err := buildTranscriber(pack, eng)
		if err != nil {
			return nil, err
		}
		c.byCode[pack.Code] = tr
	}

	for code := range c.byCode {
		c.codes = append(c.codes, code)
	}
	sort.Strings(c.codes)

	return c, nil
}

// Lookup returns the transcriber for a language code.
// Returns an UnknownLanguageError if the catalog does not carry it.
func (c *Catalog) Lookup(code string) (*Transcriber, error) {
	tr, ok := c.byCode[code]
	if !ok {
		return nil, &UnknownLanguageError{Code: code, Available: c.Codes()}
	}
	return tr, nil
}

// Codes returns the sorted language codes the catalog carries.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.codes))
	copy(codes, c.codes)
	return codes
}

// BuiltinPacks compiles the embedded packs in sorted filename order.
// Exported so the CLI can lint the shipped tables without building a
// full catalog.
func BuiltinPacks() ([]*langpack.Pack, error) {
	entries, err := builtinFS.ReadDir("packs")
	if err != nil {
		return nil, fmt.Errorf("read built-in packs: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var packs []*langpack.Pack
	for _, name := range names {
		src, err := builtinFS.ReadFile("packs/" + name)
		if err != nil {
			return nil, fmt.Errorf("read built-in pack %s: %w", name, err)
		}
		pack, err := langpack.Compile(name, src)
		if err != nil {
			return nil, fmt.Errorf("built-in pack %s: %w", name, err)
		}
		packs = append(packs, pack)
	}

	return packs, nil
}

// buildTranscriber validates a pack and compiles its rule table.
func buildTranscriber(pack *langpack.Pack, eng *engine.Engine) (*Transcriber, error) {
	if errs := langpack.Validate(pack); len(errs) > 0 {
		return nil, fmt.Errorf("pack %q invalid: %s", pack.Code, errs[0].Error())
	}

	table, err := ruleset.NewTable(pack.Rules)
	if err != nil {
		return nil, fmt.Errorf("pack %q: %w", pack.Code, err)
	}

	variants := make([]string, len(pack.Variants))
	copy(variants, pack.Variants)

	return &Transcriber{
		Code:     pack.Code,
		Name:     pack.Name,
		Status:   pack.Status,
		Variants: variants,
		table:    table,
		eng:      eng,
	}, nil
}
