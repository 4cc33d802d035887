package compiler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jingkaihe/gemc/pkg/logger"
	"github.com/pkg/errors"
)

// DefaultDebounce is the quiet period Watch waits for before recompiling.
const DefaultDebounce = 300 * time.Millisecond

// RunFunc receives the outcome of every run started by Watch.
type RunFunc func(res *Result, err error)

// Watch compiles once, then recompiles whenever the template directory, the
// skills root or a directory below it changes, until ctx is cancelled. Bursts of
// events within debounce collapse into one run. Runs happen one at a time on
// the calling goroutine. Files included from elsewhere are not watched.
func (c *Compiler) Watch(ctx context.Context, debounce time.Duration, onRun RunFunc) error {
	if info, err := os.Stat(c.cfg.TemplateDir); err != nil || !info.IsDir() {
		return errors.Errorf("template directory not found: %s", c.cfg.TemplateDir)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if onRun == nil {
		onRun = func(*Result, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	log := logger.G(ctx)
	compile := func() {
		res, err := c.Run(ctx)
		onRun(res, err)
		if err := c.addWatches(ctx, watcher); err != nil {
			log.WithError(err).Warn("failed to refresh watched directories")
		}
	}

	if err := c.addWatches(ctx, watcher); err != nil {
		return err
	}
	compile()

	timer := time.NewTimer(debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if c.ignoreEvent(event) {
				continue
			}
			log.WithField("file", event.Name).WithField("op", event.Op.String()).Debug("change detected")
			timer.Reset(debounce)
			pending = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("file watcher error")
		case <-pending:
			pending = nil
			compile()
		}
	}
}

// addWatches registers the template directory, the skills root and each
// directory below it, valid skill or not, so a SKILL.md added later is seen.
// Adding an already watched path is a no-op.
func (c *Compiler) addWatches(ctx context.Context, watcher *fsnotify.Watcher) error {
	if err := watcher.Add(c.cfg.TemplateDir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", c.cfg.TemplateDir)
	}

	entries, err := os.ReadDir(c.cfg.SkillsDir)
	if err != nil {
		return nil
	}
	if err := watcher.Add(c.cfg.SkillsDir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", c.cfg.SkillsDir)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(c.cfg.SkillsDir, entry.Name())
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logger.G(ctx).WithError(err).WithField("dir", dir).Debug("cannot watch skill directory")
		}
	}
	return nil
}

// ignoreEvent filters out chmod-only events and anything under the output
// directory, which the compiler itself writes.
func (c *Compiler) ignoreEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	name := filepath.Clean(event.Name)
	return name == c.cfg.OutputDir || strings.HasPrefix(name, c.cfg.OutputDir+string(filepath.Separator))
}
