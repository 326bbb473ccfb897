// Package source finds the files a build reads from the configured source
// directories.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SplitMask splits a "|"-separated mask such as "*.css|*.less" into patterns.
func SplitMask(mask string) []string {
	var patterns []string
	for _, p := range strings.Split(mask, "|") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// Matcher matches file paths against a mask.
type Matcher struct {
	patterns []string
}

// NewMatcher compiles mask. Patterns without a "/" are matched against the
// file's base name; others against its slash-separated path relative to the
// source root.
func NewMatcher(mask string) (*Matcher, error) {
	patterns := SplitMask(mask)
	if len(patterns) == 0 {
		return nil, fmt.Errorf("empty mask")
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid mask pattern %q", p)
		}
	}
	return &Matcher{patterns: patterns}, nil
}

// Match reports whether rel, a slash-separated path, matches any pattern.
func (m *Matcher) Match(rel string) bool {
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	for _, p := range m.patterns {
		target := base
		if strings.Contains(p, "/") {
			target = rel
		}
		if ok, _ := doublestar.Match(p, target); ok {
			return true
		}
	}
	return false
}

// Discover walks every root and returns the matching files, sorted within
// each root and in root order overall. Hidden directories and node_modules
// are skipped. A root may also be a single file, which is included when it
// matches.
func Discover(ctx context.Context, roots []string, mask string) ([]string, error) {
	m, err := NewMatcher(mask)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	for _, root := range roots {
		var found []string
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if rel == "." {
				rel = d.Name()
			}
			if m.Match(filepath.ToSlash(rel)) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan source %s: %w", root, err)
		}
		slices.Sort(found)
		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// Dirs returns the directories of roots, for watching. File roots yield their
// parent directory.
func Dirs(roots []string) []string {
	var dirs []string
	for _, root := range roots {
		dir := root
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			dir = filepath.Dir(root)
		}
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
