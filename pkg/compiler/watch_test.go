package compiler

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_RecompilesOnChange(t *testing.T) {
	root, cfg := newProject(t)
	tmpl := filepath.Join(root, DefaultTemplateDir, "a.toml")
	out := filepath.Join(root, DefaultOutputDir, "a.toml")
	writeFile(t, tmpl, "prompt = \"v1\"\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "skills"), 0o755))

	c, _ := newCompiler(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu   sync.Mutex
		runs int
	)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, 20*time.Millisecond, func(_ *Result, err error) {
			assert.NoError(t, err)
			mu.Lock()
			runs++
			mu.Unlock()
		})
	}()

	runCount := func() int {
		mu.Lock()
		defer mu.Unlock()
		return runs
	}

	require.Eventually(t, func() bool { return runCount() >= 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "prompt = \"v1\"\n", readFile(t, out))

	require.NoError(t, os.WriteFile(tmpl, []byte("prompt = \"v2\"\n"), 0o644))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && string(data) == "prompt = \"v2\"\n"
	}, 5*time.Second, 20*time.Millisecond)

	// A new skill directory is picked up and generates a command.
	writeFile(t, filepath.Join(root, "skills", "foo", "SKILL.md"), "# Foo\n")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(root, DefaultOutputDir, "foo.toml"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatch_MissingTemplateDirectory(t *testing.T) {
	c, _ := newCompiler(t, NewConfig(t.TempDir()))
	err := c.Watch(context.Background(), 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template directory not found")
}

func TestIgnoreEvent(t *testing.T) {
	root, cfg := newProject(t)
	c, _ := newCompiler(t, cfg)
	out := filepath.Join(root, DefaultOutputDir)

	assert.True(t, c.ignoreEvent(fsnotify.Event{Name: filepath.Join(out, "a.toml"), Op: fsnotify.Write}))
	assert.True(t, c.ignoreEvent(fsnotify.Event{Name: out, Op: fsnotify.Create}))
	assert.True(t, c.ignoreEvent(fsnotify.Event{Name: filepath.Join(root, DefaultTemplateDir, "a.toml"), Op: fsnotify.Chmod}))
	assert.False(t, c.ignoreEvent(fsnotify.Event{Name: filepath.Join(root, DefaultTemplateDir, "a.toml"), Op: fsnotify.Write}))
	assert.False(t, c.ignoreEvent(fsnotify.Event{Name: out + "-backup", Op: fsnotify.Write}))
}
