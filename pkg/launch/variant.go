package launch

import (
	"fmt"
	"path/filepath"
)

// VariantPath derives the march-variant location of an executable: the
// sibling of its parent directory carrying a "-tag" suffix, holding a file
// of the same name. Pure path algebra; no symlink resolution, and the same
// inputs always produce the same output.
//
//	VariantPath("/usr/bin/prog", "v3") == "/usr/bin-v3/prog"
func VariantPath(resolved, tag string) string {
	dir, exe := filepath.Dir(resolved), filepath.Base(resolved)
	parent, top := filepath.Dir(dir), filepath.Base(dir)
	return filepath.Join(parent, fmt.Sprintf("%s-%s", top, tag), exe)
}
