package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath   string
	lockfilePath string
	boardsDir    string
	frameworkDir string
	hostFlag     string
	outputPath   string
	verbose      bool
	quiet        bool
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "efm32-platform",
	Short: "Build and debug configuration for Silicon Labs EFM32/EFR32 boards",
	Long: `efm32-platform resolves the build flags, radio stack, debug tools and
toolchain packages for Silicon Labs EFM32 and EFR32 boards. It reads board
manifests and an efm32-platform.yaml project config and prints the resulting
configuration for an external build or debug driver.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("efm32-platform %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "efm32-platform.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&lockfilePath, "lockfile", "", "path to package lockfile (default: platform.lock next to the config)")
	rootCmd.PersistentFlags().StringVar(&boardsDir, "boards", "", "board manifest directory (overrides boards_dir)")
	rootCmd.PersistentFlags().StringVar(&frameworkDir, "framework-dir", "", "framework-arduino-silabs directory (overrides framework_dir)")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "target host, e.g. windows or linux_x86_64 (default: this system)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "also write the result as YAML to this file ('-' for stdout)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
