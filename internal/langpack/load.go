package langpack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Compile compiles a single pack from CUE source bytes.
// The filename is attached for error positions only; nothing is read
// from disk. This is the entry point for embedded built-in packs.
func Compile(filename string, src []byte) (*Pack, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	langVal := v.LookupPath(cue.ParsePath("language"))
	if !langVal.Exists() {
		return nil, &CompileError{
			Field:   "language",
			Message: "top-level language struct is required",
			Pos:     v.Pos(),
		}
	}

	return CompilePack(langVal)
}

// LoadDir compiles every .cue file under dir, one pack per file.
//
// Files are compiled independently (no cross-file unification: two packs
// both define "language", which would conflict in a single CUE instance)
// and processed in sorted path order so results are deterministic.
// Duplicate language codes across files are rejected.
func LoadDir(dir string) ([]*Pack, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("pack directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing pack directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("error scanning directory: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}
	sort.Strings(files)

	var packs []*Pack
	seen := make(map[string]string) // code -> file that declared it
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}

		pack, err := Compile(file, src)
		if err != nil {
			return nil, err
		}

		if prev, ok := seen[pack.Code]; ok {
			return nil, fmt.Errorf("duplicate language code %q in %s and %s", pack.Code, prev, file)
		}
		seen[pack.Code] = file

		packs = append(packs, pack)
	}

	return packs, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
