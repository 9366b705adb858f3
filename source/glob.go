package source

import (
	"os"
	"path/filepath"
	"sort"
)

// Resolve expands path into an ordered, deduplicated list of regular
// files. path may be a single file, a directory (all regular files
// directly inside it), or a glob pattern. Files that disappear between
// the glob expansion and a later Open are not this function's concern;
// it only reports what existed at resolution time.
func Resolve(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return resolveDir(path)
		}
		return []string{filepath.Clean(path)}, nil
	}

	matches, gerr := filepath.Glob(path)
	if gerr != nil {
		return nil, gerr
	}

	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		st, statErr := os.Stat(m)
		if statErr != nil || st.IsDir() {
			continue
		}
		clean := filepath.Clean(m)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}
	sort.Strings(out)
	return out, nil
}

func resolveDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, filepath.Clean(filepath.Join(dir, e.Name())))
	}
	sort.Strings(out)
	return out, nil
}
