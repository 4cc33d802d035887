package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder is a Reporter that keeps every line as "kind: message".
type recorder struct {
	lines []string
}

func (r *recorder) add(kind, msg string) { r.lines = append(r.lines, fmt.Sprintf("%s: %s", kind, msg)) }

func (r *recorder) Processing(name string) { r.add("processing", name) }
func (r *recorder) Success(msg string)     { r.add("success", msg) }
func (r *recorder) Warning(msg string)     { r.add("warning", msg) }
func (r *recorder) Failure(msg string)     { r.add("failure", msg) }
func (r *recorder) Removed(path string)    { r.add("removed", path) }
func (r *recorder) Info(msg string)        { r.add("info", msg) }

func (r *recorder) count(kind string) int {
	n := 0
	for _, l := range r.lines {
		if strings.HasPrefix(l, kind+": ") {
			n++
		}
	}
	return n
}

func (r *recorder) has(kind, substr string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, kind+": ") && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// newProject creates a project root with an empty template directory and
// returns it with a default Config.
func newProject(t *testing.T) (string, Config) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, DefaultTemplateDir), 0o755))
	return root, NewConfig(root)
}

// snapshot returns name -> content for every file directly inside dir.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files[e.Name()] = readFile(t, filepath.Join(dir, e.Name()))
	}
	return files
}
