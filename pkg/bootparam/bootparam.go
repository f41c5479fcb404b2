// Package bootparam reads kernel boot parameters from a read-once text
// resource of whitespace-separated key=value tokens, usually /proc/cmdline.
package bootparam

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultPath is the kernel command line exposed by procfs.
const DefaultPath = "/proc/cmdline"

// Limit boot parameter reads (1MB max)
const maxSize = 1 << 20

// Source is a boot-parameter file. The zero value reads DefaultPath.
type Source struct {
	Path string
}

func (s *Source) path() string {
	if s.Path != "" {
		return s.Path
	}
	return DefaultPath
}

// Lookup scans the boot parameters in order and returns the value of the
// first token beginning with "key=" (the value may be empty, and may
// itself contain '=' as in "root=PARTUUID=xyz"). Key-only tokens such as
// "quiet" never match and do not stop the scan. Scanning stops at the
// first match.
func (s *Source) Lookup(key string) (string, bool, error) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		return "", false, fmt.Errorf("failed to read boot parameters: %w", err)
	}

	if !utf8.Valid(raw) {
		return "", false, fmt.Errorf("boot parameters contain invalid UTF-8")
	}

	if len(raw) > maxSize {
		return "", false, fmt.Errorf("boot parameters exceed maximum size of %d bytes", maxSize)
	}

	prefix := key + "="
	for _, param := range strings.Fields(string(raw)) {
		if val, ok := strings.CutPrefix(param, prefix); ok {
			return val, true, nil
		}
	}

	return "", false, nil
}
