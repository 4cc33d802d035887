package compiler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jingkaihe/gemc/pkg/logger"
	"github.com/jingkaihe/gemc/pkg/skills"
	"github.com/pkg/errors"
)

// Compiler runs template compilation for one configuration.
type Compiler struct {
	cfg      Config
	reporter Reporter
	expander *Expander
	skills   *skills.Discovery
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithReporter sends progress lines to r.
func WithReporter(r Reporter) Option {
	return func(c *Compiler) {
		if r != nil {
			c.reporter = r
		}
	}
}

// New normalizes cfg and returns a Compiler for it.
func New(cfg Config, opts ...Option) (*Compiler, error) {
	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}

	c := &Compiler{
		cfg:      normalized,
		reporter: nopReporter{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.expander = NewExpander(c.cfg.ProjectRoot, c.reporter)
	c.skills = skills.NewDiscovery(c.cfg.SkillsDir)

	return c, nil
}

// Config returns the normalized configuration.
func (c *Compiler) Config() Config {
	return c.cfg
}

// Templates lists the template file names in the template directory, sorted,
// with excluded names removed.
func (c *Compiler) Templates() ([]string, error) {
	entries, err := os.ReadDir(c.cfg.TemplateDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list templates in %s", c.cfg.TemplateDir)
	}

	// os.ReadDir sorts by file name.
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, c.cfg.Extension) {
			continue
		}
		if c.cfg.excluded(name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Skills returns the valid skills under the skills root.
func (c *Compiler) Skills(ctx context.Context) ([]*skills.Skill, error) {
	return c.skills.Discover(ctx)
}

// Run performs one full compilation: templates, skill commands, stale
// cleanup. A missing template directory is not an error; the returned result
// is marked Skipped and the output directory is left alone. Errors returned
// from Run are filesystem failures that stopped the run part way.
func (c *Compiler) Run(ctx context.Context) (*Result, error) {
	ctx = logger.WithLogger(ctx, logger.G(ctx).WithField("project_root", c.cfg.ProjectRoot))
	r := &run{Compiler: c, result: &Result{}}

	if info, err := os.Stat(c.cfg.TemplateDir); err != nil || !info.IsDir() {
		c.reporter.Info(fmt.Sprintf("Template directory not found: %s", c.cfg.TemplateDir))
		r.result.Skipped = true
		return r.result, nil
	}

	if err := os.MkdirAll(c.cfg.OutputDir, dirMode); err != nil {
		return r.result, errors.Wrapf(err, "failed to create output directory %s", c.cfg.OutputDir)
	}

	templates, err := c.Templates()
	if err != nil {
		return r.result, err
	}

	if len(templates) == 0 {
		c.reporter.Info(fmt.Sprintf("No %s templates found.", c.cfg.Extension))
	} else {
		c.reporter.Info(fmt.Sprintf("Compiling %d template(s) from %s...", len(templates), c.cfg.TemplateDir))
	}

	for _, name := range templates {
		if err := r.compileTemplate(ctx, name); err != nil {
			return r.result, err
		}
	}

	desired, err := r.synthesizeSkills(ctx, templates)
	if err != nil {
		return r.result, err
	}

	if err := r.cleanup(ctx, desired); err != nil {
		return r.result, err
	}

	c.reporter.Success(summary(r.result))
	return r.result, nil
}

func summary(res *Result) string {
	s := fmt.Sprintf("Compiled %d template(s), generated %d command(s)", len(res.Compiled), len(res.Generated))
	if len(res.Removed) > 0 {
		s += fmt.Sprintf(", removed %d stale file(s)", len(res.Removed))
	}
	return s
}

// run carries the state of a single Run call.
type run struct {
	*Compiler
	result *Result
}

// compileTemplate processes one template file. A template that cannot be read
// is reported and skipped; only write failures are returned.
func (r *run) compileTemplate(ctx context.Context, name string) error {
	src := filepath.Join(r.cfg.TemplateDir, name)
	r.reporter.Processing(name)

	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			r.reporter.Failure(fmt.Sprintf("Template not found: %s", src))
		} else {
			r.reporter.Failure(fmt.Sprintf("Error reading template %s: %v", src, err))
		}
		logger.G(ctx).WithError(err).WithField("template", name).Debug("template skipped")
		r.result.Failed = append(r.result.Failed, name)
		r.result.addProblem(errors.Wrap(ErrTemplateNotFound, src))
		return nil
	}

	if err := r.emit(ctx, name, string(data)); err != nil {
		return err
	}
	r.result.Compiled = append(r.result.Compiled, name)
	return nil
}

// emit expands content, lints it and writes it to the output directory.
func (r *run) emit(ctx context.Context, name, content string) error {
	log := logger.G(ctx).WithField("output", name)

	expanded, problems := r.expander.Expand(ctx, content)
	for _, p := range problems {
		r.result.addProblem(errors.Wrap(p, name))
	}

	if r.cfg.Lint && r.cfg.Extension == DefaultExtension {
		if err := LintCommand(expanded); err != nil {
			r.reporter.Warning(fmt.Sprintf("%s is not a valid command file: %v", name, err))
			var lintErr *LintError
			if errors.As(err, &lintErr) && lintErr.Position() != "" {
				log.Debug(lintErr.Position())
			}
			r.result.addProblem(errors.Wrap(err, name))
		}
	}

	dest, err := WriteOutput(r.cfg.OutputDir, name, expanded)
	if err != nil {
		return err
	}
	log.WithField("bytes", len(expanded)).Debug("output written")
	r.reporter.Success(fmt.Sprintf("Written to %s", dest))
	return nil
}

// synthesizeSkills generates a command for every skill without an explicit
// template and returns the desired output set: all templates plus one entry
// per valid skill.
func (r *run) synthesizeSkills(ctx context.Context, templates []string) (map[string]struct{}, error) {
	desired := make(map[string]struct{}, len(templates))
	for _, name := range templates {
		desired[name] = struct{}{}
	}

	found, err := r.skills.Discover(ctx)
	if err != nil {
		return nil, err
	}
	logger.G(ctx).WithField("skills", len(found)).Debug("skills discovered")

	for _, s := range found {
		name := s.Name + r.cfg.Extension
		if _, exists := desired[name]; exists {
			logger.G(ctx).WithField("skill", s.Name).Debug("explicit template takes precedence")
			continue
		}
		desired[name] = struct{}{}

		r.reporter.Processing(fmt.Sprintf("%s (skill %s)", name, s.Name))
		content, err := SkillTemplate(r.cfg.ProjectRoot, s)
		if err != nil {
			return nil, err
		}
		if err := r.emit(ctx, name, content); err != nil {
			return nil, err
		}
		r.result.Generated = append(r.result.Generated, name)
	}

	return desired, nil
}
