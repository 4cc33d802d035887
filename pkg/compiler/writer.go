package compiler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// WriteOutput writes content to dir/name, creating dir and its parents when
// needed and replacing any existing file. The write holds an exclusive file
// lock so concurrent gemc processes never interleave within one file.
func WriteOutput(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	dest := filepath.Join(dir, name)
	if err := lockedfile.Write(dest, strings.NewReader(content), fileMode); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", dest)
	}
	return dest, nil
}
