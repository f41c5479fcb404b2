package launch

import (
	"os"
	"path/filepath"

	"github.com/agnivade/levenshtein"
)

const (
	maxSuggestions     = 3
	maxSuggestDistance = 2
)

// suggestions returns executable names from the search path within a small
// edit distance of name, for the "did you mean" hint logged when
// resolution fails. Unreadable directories are skipped.
func suggestions(name, searchPath string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, dir := range searchDirs(searchPath) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			n := e.Name()
			if _, dup := seen[n]; dup || n == name {
				continue
			}
			if levenshtein.ComputeDistance(name, n) > maxSuggestDistance {
				continue
			}
			if !isExecutable(filepath.Join(dir, n)) {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
			if len(out) == maxSuggestions {
				return out
			}
		}
	}
	return out
}
