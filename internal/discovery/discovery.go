// Package discovery expands CLI source arguments that contain glob
// metacharacters into concrete Python file paths.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// globChars are the metacharacters that mark an argument as a pattern
// rather than a literal path.
const globChars = "*?[{"

// Expand resolves each argument: literal paths pass through untouched,
// patterns are expanded against the filesystem. Pattern matches are
// limited to .py files, with underscore-prefixed files and __pycache__
// directories skipped.
func Expand(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, globChars) {
			out = append(out, arg)
			continue
		}

		matches, err := expandPattern(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}

// expandPattern walks the non-magic directory prefix of a pattern and
// collects matching files in sorted order.
func expandPattern(pattern string) ([]string, error) {
	g, err := glob.Compile(filepath.ToSlash(pattern), '/')
	if err != nil {
		return nil, err
	}

	root := staticPrefix(pattern)

	var matches []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		if info.IsDir() {
			if info.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			return nil
		}

		name := info.Name()
		if filepath.Ext(name) != ".py" || strings.HasPrefix(name, "_") {
			return nil
		}

		if g.Match(filepath.ToSlash(path)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

// staticPrefix returns the deepest directory of a pattern that contains no
// glob metacharacters, which bounds the filesystem walk.
func staticPrefix(pattern string) string {
	dir := filepath.Dir(pattern)
	for strings.ContainsAny(dir, globChars) {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if strings.ContainsAny(dir, globChars) || dir == "" {
		return "."
	}
	return dir
}
