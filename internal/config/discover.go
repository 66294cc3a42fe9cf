package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Vagrantfile is the file that marks a Vagrant working directory.
const Vagrantfile = "Vagrantfile"

// Discover walks root up to depth levels and returns every directory holding
// a Vagrantfile, sorted. Hidden directories (including .vagrant) are skipped.
func Discover(root string, depth int) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are not fatal
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			rel, _ := filepath.Rel(root, path)
			if rel != "." && strings.Count(rel, string(filepath.Separator))+1 > depth {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == Vagrantfile {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Strings(dirs)
	return dirs, nil
}
