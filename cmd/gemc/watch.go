package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jingkaihe/gemc/pkg/compiler"
	"github.com/jingkaihe/gemc/pkg/config"
	"github.com/jingkaihe/gemc/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// WatchConfig holds configuration for the watch command
type WatchConfig struct {
	Debounce time.Duration
}

// NewWatchConfig creates a new WatchConfig with default values
func NewWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce: compiler.DefaultDebounce,
	}
}

// Validate validates the WatchConfig and returns an error if invalid
func (c *WatchConfig) Validate() error {
	if c.Debounce <= 0 {
		return errors.Errorf("debounce must be positive: %s", c.Debounce)
	}
	return nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile whenever templates or skills change",
	Long: `Compile once, then watch the template directory and the skills directory and
recompile after every burst of changes. Files included from elsewhere are not
watched; touch a template to pick up their changes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		config := getWatchConfigFromFlags(cmd)
		if err := config.Validate(); err != nil {
			presenter.Error(err, "Invalid configuration")
			os.Exit(1)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			presenter.Info("Stopping watch...")
			cancel()
		}()

		if err := runWatch(ctx, settings, config, presenter.Default()); err != nil {
			presenter.Error(err, "Watch failed")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewWatchConfig()
	watchCmd.Flags().Duration("debounce", defaults.Debounce, "Quiet period to wait for after a change before recompiling")
}

func getWatchConfigFromFlags(cmd *cobra.Command) *WatchConfig {
	config := NewWatchConfig()
	if debounce, err := cmd.Flags().GetDuration("debounce"); err == nil {
		config.Debounce = debounce
	}
	return config
}

// runWatch blocks until ctx is cancelled. Run failures are reported and the
// watch keeps going.
func runWatch(ctx context.Context, s *config.Settings, wc *WatchConfig, p presenter.Presenter) error {
	c, err := compiler.New(s.CompilerConfig(), compiler.WithReporter(p))
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	cfg := c.Config()
	p.Info(fmt.Sprintf("Watching %s and %s for changes", cfg.TemplateDir, cfg.SkillsDir))

	return c.Watch(ctx, wc.Debounce, func(res *compiler.Result, err error) {
		switch {
		case err != nil:
			p.Error(err, "Compilation failed")
		case s.Strict && res.Err() != nil:
			p.Warning(fmt.Sprintf("%d problem(s) reported", len(res.Problems())))
		}
	})
}
