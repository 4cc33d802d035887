package compiler

import "path/filepath"

// ResolvePath turns an include reference into a filesystem path. Absolute
// references are returned unchanged; anything else is joined to projectRoot.
// Existence is not checked and ".." segments are not rejected.
func ResolvePath(projectRoot, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(projectRoot, ref)
}
