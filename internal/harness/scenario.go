package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a pronunciation conformance scenario: a set of
// inputs for one language with their expected renditions and coverage
// gaps.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name, so keep it filesystem-safe.
	Name string `yaml:"name"`

	// Description explains what this scenario pins down.
	Description string `yaml:"description"`

	// Language is the catalog code to transcribe with.
	Language string `yaml:"language"`

	// PackDir optionally points at a directory of pack files. When set,
	// those packs replace the built-in catalog for this scenario. The
	// path is resolved relative to the scenario file by LoadScenario.
	PackDir string `yaml:"pack_dir,omitempty"`

	// Cases are the inputs and their expectations, run in order.
	Cases []Case `yaml:"cases"`
}

// Case is one input with its expected outcome.
type Case struct {
	// Input is the raw text to transcribe. Case folding and NFC happen
	// inside the transcriber, so inputs may be written naturally.
	Input string `yaml:"input"`

	// Want maps variant labels to expected renditions. Subset match:
	// labels not listed are not checked.
	Want map[string]string `yaml:"want,omitempty"`

	// First is the expected rendition of the first variant. Convenient
	// for single-variant languages.
	First string `yaml:"first,omitempty"`

	// Gaps lists the expected coverage gaps, in input order. Exact
	// match: missing and surplus gaps both fail.
	Gaps []GapSpec `yaml:"gaps,omitempty"`

	// AllowGaps skips gap checking entirely. Without it, a case that
	// lists no gaps asserts a gap-free transcription.
	AllowGaps bool `yaml:"allow_gaps,omitempty"`
}

// GapSpec is one expected coverage gap.
type GapSpec struct {
	// Pos is the rune offset in the folded input.
	Pos int `yaml:"pos"`

	// Grapheme is the text expected to pass through verbatim.
	Grapheme string `yaml:"grapheme"`
}

// LoadScenario reads and parses a scenario YAML file. A relative
// pack_dir is resolved against the scenario file's directory. Returns
// an error if the file doesn't exist, is malformed, contains unknown
// fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "case:" vs "cases:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve pack_dir relative to the scenario file BEFORE validation
	if scenario.PackDir != "" && !filepath.IsAbs(scenario.PackDir) {
		scenario.PackDir = filepath.Join(filepath.Dir(path), scenario.PackDir)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarioFiles returns all .yaml and .yml files under dir, sorted
// for deterministic suite order.
func FindScenarioFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Language == "" {
		return fmt.Errorf("language is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	// Validate pack_dir exists when set
	if s.PackDir != "" {
		info, err := os.Stat(s.PackDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("pack_dir not found: %s", s.PackDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("pack_dir is not a directory: %s", s.PackDir)
		}
	}

	for i, c := range s.Cases {
		if err := validateCase(i, &c); err != nil {
			return err
		}
	}

	return nil
}

// validateCase validates a single case.
func validateCase(index int, c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("cases[%d]: input is required", index)
	}

	if len(c.Want) == 0 && c.First == "" {
		return fmt.Errorf("cases[%d]: want or first is required", index)
	}

	for label, text := range c.Want {
		if text == "" {
			return fmt.Errorf("cases[%d].want[%s]: rendition is required", index, label)
		}
	}

	if len(c.Gaps) > 0 && c.AllowGaps {
		return fmt.Errorf("cases[%d]: gaps and allow_gaps are mutually exclusive", index)
	}

	for j, g := range c.Gaps {
		if g.Grapheme == "" {
			return fmt.Errorf("cases[%d].gaps[%d]: grapheme is required", index, j)
		}
		if g.Pos < 0 {
			return fmt.Errorf("cases[%d].gaps[%d]: pos must be non-negative", index, j)
		}
	}

	return nil
}
