package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// versionCmd reports build metadata and the config file in effect.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build and runtime details",
	Long: `Show the release, commit and build date stamped into the binary, the Go
toolchain and platform it runs on, and which .shiftgrid.yaml was loaded.`,
	Run: func(cmd *cobra.Command, _ []string) {
		loaded := "none"
		if err := loadConfigFile(); err == nil && viper.ConfigFileUsed() != "" {
			loaded = viper.ConfigFileUsed()
		}
		cmd.Printf("shiftgrid %s (%s, built %s)\n", version, commit, date)
		cmd.Printf("  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		cmd.Printf("  config:   %s\n", loaded)
	},
}
