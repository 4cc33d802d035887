package compiler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	root := filepath.FromSlash("/project")
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"relative", "docs/intro.md", filepath.Join(root, "docs", "intro.md")},
		{"absolute unchanged", filepath.FromSlash("/etc/motd"), filepath.FromSlash("/etc/motd")},
		{"traversal is joined, not blocked", "../outside.md", filepath.FromSlash("/outside.md")},
		{"empty resolves to root", "", root},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(root, tt.ref))
		})
	}
}
