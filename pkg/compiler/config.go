package compiler

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// Default locations, relative to the project root.
const (
	DefaultTemplateDir = "gemini/templates/commands"
	DefaultOutputDir   = "gemini/.gemini/commands"
	DefaultSkillsDir   = "skills"
	DefaultExtension   = ".toml"
)

// Config holds every path and switch a run needs. It is built once at startup
// and handed to New; nothing in this package reads global state.
type Config struct {
	ProjectRoot string
	TemplateDir string
	OutputDir   string
	SkillsDir   string
	Extension   string
	// Exclude holds doublestar patterns matched against template file names.
	// Matching templates are treated as if they did not exist.
	Exclude []string
	// Lint checks every .toml output for TOML syntax and a string prompt key.
	Lint bool
}

// NewConfig returns the default configuration anchored at projectRoot.
func NewConfig(projectRoot string) Config {
	return Config{
		ProjectRoot: projectRoot,
		TemplateDir: DefaultTemplateDir,
		OutputDir:   DefaultOutputDir,
		SkillsDir:   DefaultSkillsDir,
		Extension:   DefaultExtension,
		Lint:        true,
	}
}

// Normalize returns a copy with an absolute project root, directories resolved
// against it, defaults filled in and exclude patterns validated.
func (c Config) Normalize() (Config, error) {
	root := c.ProjectRoot
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return c, errors.Wrapf(err, "failed to resolve project root %s", root)
	}
	c.ProjectRoot = abs

	c.TemplateDir = ResolvePath(abs, orDefault(c.TemplateDir, DefaultTemplateDir))
	c.OutputDir = ResolvePath(abs, orDefault(c.OutputDir, DefaultOutputDir))
	c.SkillsDir = ResolvePath(abs, orDefault(c.SkillsDir, DefaultSkillsDir))

	c.Extension = orDefault(c.Extension, DefaultExtension)
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return c, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return c, nil
}

// excluded reports whether a template file name matches an exclude pattern.
func (c Config) excluded(name string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
