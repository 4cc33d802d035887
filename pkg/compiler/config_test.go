package compiler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/work")
	assert.Equal(t, "/work", cfg.ProjectRoot)
	assert.Equal(t, DefaultTemplateDir, cfg.TemplateDir)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, DefaultSkillsDir, cfg.SkillsDir)
	assert.Equal(t, ".toml", cfg.Extension)
	assert.True(t, cfg.Lint)
}

func TestConfigNormalize(t *testing.T) {
	root := t.TempDir()

	t.Run("resolves directories against the root", func(t *testing.T) {
		cfg := NewConfig(root)
		cfg.SkillsDir = "/abs/skills"

		got, err := cfg.Normalize()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "gemini", "templates", "commands"), got.TemplateDir)
		assert.Equal(t, filepath.Join(root, "gemini", ".gemini", "commands"), got.OutputDir)
		assert.Equal(t, "/abs/skills", got.SkillsDir)
	})

	t.Run("fills blanks with defaults", func(t *testing.T) {
		got, err := Config{ProjectRoot: root, Extension: "md"}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, DefaultTemplateDir), got.TemplateDir)
		assert.Equal(t, filepath.Join(root, DefaultSkillsDir), got.SkillsDir)
		assert.Equal(t, ".md", got.Extension)
	})

	t.Run("empty root means working directory", func(t *testing.T) {
		got, err := Config{}.Normalize()
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got.ProjectRoot))
	})

	t.Run("rejects bad exclude patterns", func(t *testing.T) {
		cfg := NewConfig(root)
		cfg.Exclude = []string{"[unclosed"}
		_, err := cfg.Normalize()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid exclude pattern")
	})
}

func TestConfigExcluded(t *testing.T) {
	cfg := NewConfig("/work")
	cfg.Exclude = []string{"_*.toml", "draft-{a,b}.toml"}

	assert.True(t, cfg.excluded("_partial.toml"))
	assert.True(t, cfg.excluded("draft-b.toml"))
	assert.False(t, cfg.excluded("draft-c.toml"))
	assert.False(t, cfg.excluded("review.toml"))
}
