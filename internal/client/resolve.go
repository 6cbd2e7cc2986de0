package client

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var supportedExtensions = map[string]bool{
	".mzml": true,
	".msz":  true,
	".mszx": true,
}

// ResolveInputs expands a list of path arguments into a sorted,
// deduplicated list of eligible files: regular files with a supported
// extension are included as-is, directories are enumerated (one level, or
// every depth when recursive) for entries with a supported extension.
// Anything else is skipped with a warning returned alongside the result.
func ResolveInputs(paths []string, recursive bool) ([]string, []string, error) {
	seen := make(map[string]bool)
	var result []string
	var warnings []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("path does not exist: %s", p))
			continue
		}

		if info.Mode().IsRegular() {
			if supportedExtensions[strings.ToLower(filepath.Ext(p))] {
				addCanonical(&result, seen, p)
			} else {
				warnings = append(warnings, fmt.Sprintf("skipping unsupported file: %s", p))
			}
			continue
		}

		if info.IsDir() {
			matches, err := enumerateDir(p, recursive)
			if err != nil {
				return nil, warnings, fmt.Errorf("enumerate %s: %w", p, err)
			}
			for _, m := range matches {
				addCanonical(&result, seen, m)
			}
			continue
		}

		warnings = append(warnings, fmt.Sprintf("path is neither a file nor a directory: %s", p))
	}

	if len(result) == 0 {
		return nil, warnings, fmt.Errorf("no eligible inputs found in the given paths")
	}

	sort.Strings(result)
	return result, warnings, nil
}

func addCanonical(result *[]string, seen map[string]bool, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if !seen[abs] {
		seen[abs] = true
		*result = append(*result, abs)
	}
}

func enumerateDir(dir string, recursive bool) ([]string, error) {
	var matches []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if supportedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
				matches = append(matches, filepath.Join(dir, e.Name()))
			}
		}
		return matches, nil
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
