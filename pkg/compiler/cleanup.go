package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/jingkaihe/gemc/pkg/logger"
	"github.com/pkg/errors"
)

// cleanup deletes regular files with the command extension directly inside the
// output directory whose names are not in desired. Subdirectories, symlinks
// and other extensions are left alone.
func (r *run) cleanup(ctx context.Context, desired map[string]struct{}) error {
	entries, err := os.ReadDir(r.cfg.OutputDir)
	if err != nil {
		return errors.Wrapf(err, "failed to list outputs in %s", r.cfg.OutputDir)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasSuffix(name, r.cfg.Extension) {
			continue
		}
		if _, ok := desired[name]; ok {
			continue
		}

		path := filepath.Join(r.cfg.OutputDir, name)
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "failed to remove stale output %s", path)
		}
		logger.G(ctx).WithField("path", path).Debug("stale output removed")
		r.reporter.Removed(path)
		r.result.Removed = append(r.result.Removed, name)
	}
	return nil
}
