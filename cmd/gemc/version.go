package main

import (
	"fmt"
	"os"

	"github.com/jingkaihe/gemc/pkg/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version information of gemc in JSON format.`,
	Args:  cobra.NoArgs,
	// Version output must not depend on a readable config file.
	PersistentPreRun: func(*cobra.Command, []string) {},
	Run: func(_ *cobra.Command, _ []string) {
		json, err := version.Get().JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting version info: %s\n", err)
			os.Exit(1)
		}
		fmt.Println(json)
	},
}
