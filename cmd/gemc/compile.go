package main

import (
	"context"
	"os"

	"github.com/jingkaihe/gemc/pkg/compiler"
	"github.com/jingkaihe/gemc/pkg/config"
	"github.com/jingkaihe/gemc/pkg/logger"
	"github.com/jingkaihe/gemc/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile templates and skills into command files",
	Long: `Compile every template in the template directory, generate a command for
each skill that has no template of its own, and remove stale command files.

Missing or unreadable includes are reported and replaced with a placeholder;
they do not stop the run. Use --strict to exit with status 1 when any were
reported.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := runCompile(cmd.Context(), settings, presenter.Default()); err != nil {
			presenter.Error(err, "Compilation failed")
			os.Exit(1)
		}
	},
}

// runCompile performs a single run. Problems recorded in the result only
// fail the run in strict mode.
func runCompile(ctx context.Context, s *config.Settings, p presenter.Presenter) error {
	c, err := compiler.New(s.CompilerConfig(), compiler.WithReporter(p))
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	res, err := c.Run(ctx)
	if err != nil {
		return err
	}

	if problems := res.Problems(); len(problems) > 0 {
		logger.G(ctx).WithField("problems", len(problems)).Debug("run finished with problems")
		if s.Strict {
			return errors.Wrap(res.Err(), "strict mode")
		}
	}
	return nil
}
