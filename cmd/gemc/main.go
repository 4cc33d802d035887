package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jingkaihe/gemc/pkg/config"
	"github.com/jingkaihe/gemc/pkg/logger"
	"github.com/jingkaihe/gemc/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFile string

	// settings is populated by the root PersistentPreRunE before any command runs.
	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "gemc",
	Short: "Compile Gemini CLI command templates",
	Long: `gemc compiles command templates into Gemini CLI command files.

Every @{path} reference in a template is replaced with the contents of the
file it names, relative to the project root. Skills found under the skills
directory get a generated command unless a template with the same name exists,
and generated files with no remaining source are removed.

Running gemc without a subcommand is the same as "gemc compile".`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	Run: func(cmd *cobra.Command, args []string) {
		compileCmd.Run(cmd, args)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to a gemc.yaml config file (default: ./gemc.yaml or $HOME/.config/gemc/gemc.yaml)")
	flags.String("project-root", "", "Project root that @{...} references resolve against (default: current directory)")
	flags.String("template-dir", "", "Template directory, relative to the project root")
	flags.String("output-dir", "", "Output directory, relative to the project root")
	flags.String("skills-dir", "", "Skills directory, relative to the project root")
	flags.String("extension", "", "Template and output file extension")
	flags.StringSlice("exclude", nil, "Glob patterns of template names to skip")
	flags.Bool("lint", true, "Check that generated .toml files are valid command files")
	flags.Bool("strict", false, "Exit with status 1 when any template fails or any include is missing")
	flags.String("profile", "", "Named profile from the config file to apply")
	flags.String("log-level", "info", "Log level (panic, fatal, error, warn, info, debug, trace)")
	flags.String("log-format", "fmt", "Log format (fmt or json)")
	flags.BoolP("quiet", "q", false, "Only print errors")
	flags.String("color", "auto", "Colorize output (auto, always, never)")

	bindFlags(viper.GetViper(), flags)
}

// bindFlags binds each persistent flag to the viper key of the same name with
// dashes replaced by underscores.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", f.Name, err))
		}
	})
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func setup(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()
	if err := config.Init(v, configFile); err != nil {
		return err
	}

	s, err := config.Load(v)
	if err != nil {
		return err
	}

	if err := logger.Configure(s.LogLevel, s.LogFormat); err != nil {
		return errors.Wrap(err, "failed to configure logging")
	}
	presenter.Default().SetColorMode(presenter.ParseColorMode(s.Color))
	presenter.SetQuiet(s.Quiet)

	if used := v.ConfigFileUsed(); used != "" {
		logger.G(cmd.Context()).WithField("config", used).Debug("loaded config file")
	}

	settings = s
	return nil
}

func main() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		presenter.Error(err, "gemc")
		os.Exit(1)
	}
}
