package launch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/text/cases"
)

// ErrNotFound is the single outcome for every resolution failure: missing
// command, found-but-not-executable, unreadable directory entries.
var ErrNotFound = errors.New("executable file not found")

// DefaultSearchPath is used when the PATH environment variable is unset.
// An empty (but set) PATH stays empty and yields no search directories.
const DefaultSearchPath = "/usr/local/bin:/usr/bin:/bin"

// isExecutable reports whether path names an existing regular file this
// process may execute. No content inspection is performed.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

// LookPath resolves file against a colon-separated search path. A file
// containing a path separator is checked directly and returned in absolute
// form; the search path is never consulted for it, so a relative
// "./local_name" cannot be reinterpreted against PATH. Search-path hits
// are returned as joined, without further absolutizing.
func LookPath(file, searchPath string) (string, error) {
	if strings.ContainsRune(file, os.PathSeparator) {
		if !isExecutable(file) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, file)
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrNotFound, file, err)
		}
		return abs, nil
	}

	for _, dir := range searchDirs(searchPath) {
		candidate := filepath.Join(dir, file)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, file)
}

// searchDirs splits a colon-separated search path, preserving order and
// dropping directories already seen under a case-folded, cleaned key so
// the same directory under different spellings is tried once.
func searchDirs(searchPath string) []string {
	if searchPath == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var dirs []string
	for _, dir := range strings.Split(searchPath, ":") {
		if dir == "" {
			continue
		}
		key := cases.Fold().String(filepath.Clean(dir))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
