package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jingkaihe/gemc/pkg/config"
	"github.com/jingkaihe/gemc/pkg/presenter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration gemc would run with after merging defaults, the
config file, GEMC_* environment variables, flags and the selected profile.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runConfig(settings, viper.ConfigFileUsed(), os.Stdout); err != nil {
			presenter.Error(err, "Failed to print configuration")
			os.Exit(1)
		}
	},
}

func runConfig(s *config.Settings, configFileUsed string, w io.Writer) error {
	data, err := s.YAML()
	if err != nil {
		return err
	}

	if configFileUsed != "" {
		fmt.Fprintf(w, "# config file: %s\n", configFileUsed)
	}
	if names := s.ProfileNames(); len(names) > 0 {
		fmt.Fprintf(w, "# profiles: %s\n", strings.Join(names, ", "))
	}
	_, err = w.Write(data)
	return err
}
