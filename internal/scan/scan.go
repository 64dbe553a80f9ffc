// Package scan walks a project root and classifies every file as a
// JS/TS source file, a non-source asset, or neither.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/deadwood/internal/constants"
)

// Result holds the canonicalized file sets discovered under a root.
type Result struct {
	Root         string
	SourceFiles  map[string]struct{}
	AssetFiles   map[string]struct{}
}

// Options narrows what Walk collects.
type Options struct {
	IncludeGlobs []string
	ExcludeGlobs []string
}

// Walk collects every source and asset file under root, honoring
// .gitignore and the fixed ignored-directory list, plus any
// include/exclude glob patterns.
func Walk(root string, opts Options) (*Result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	gi := loadGitIgnore(absRoot)
	res := &Result{
		Root:        absRoot,
		SourceFiles: make(map[string]struct{}),
		AssetFiles:  make(map[string]struct{}),
	}

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		relSlash := filepath.ToSlash(rel)

		if info.IsDir() {
			if path != absRoot && isIgnoredDir(filepath.Base(path)) {
				return filepath.SkipDir
			}
			if gi != nil && relSlash != "." && gi.MatchesPath(relSlash) {
				return filepath.SkipDir
			}
			return nil
		}

		if gi != nil && gi.MatchesPath(relSlash) {
			return nil
		}
		if !matchesGlobs(relSlash, opts.IncludeGlobs, opts.ExcludeGlobs) {
			return nil
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		switch {
		case hasExtension(ext, constants.SourceExtensions) && !isDeclarationFile(path):
			res.SourceFiles[path] = struct{}{}
		case hasExtension(ext, constants.AssetExtensions):
			res.AssetFiles[path] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func matchesGlobs(relSlash string, include, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, relSlash); ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pattern := range include {
		if ok, _ := doublestar.Match(pattern, relSlash); ok {
			return true
		}
	}
	return false
}

func hasExtension(ext string, set []string) bool {
	for _, e := range set {
		if ext == e {
			return true
		}
	}
	return false
}

func isDeclarationFile(path string) bool {
	return strings.HasSuffix(path, ".d.ts")
}

func isIgnoredDir(name string) bool {
	for _, ignored := range constants.IgnoredDirNames {
		if name == ignored {
			return true
		}
	}
	return false
}

func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
