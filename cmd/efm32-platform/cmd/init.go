package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default efm32-platform.yaml scaffold.
const initTemplate = `# efm32-platform configuration
version: 1

# Installed framework-arduino-silabs package and board manifests.
# Relative paths are resolved against this file's directory.
framework_dir: ./packages/framework-arduino-silabs
boards_dir: ./boards

# Target host for tool selection. Defaults to this system.
# host: linux_x86_64

# lockfile: platform.lock

variables:
  board: xg24explorerkit
  frameworks: [arduino]
  # upload_protocol: jlink
  # debug_tool: cmsis-dap
  # debug_speed: "4000"
  # Select a radio stack with one of:
  #   -DARDUINO_SILABS_STACK_NONE
  #   -DARDUINO_SILABS_STACK_BLE_ARDUINO
  #   -DARDUINO_SILABS_STACK_BLE_SILABS
  #   -DARDUINO_SILABS_STACK_MATTER (default)
  # build_flags: -DARDUINO_SILABS_STACK_BLE_SILABS

# Package list. Omit to use the platform defaults.
# packages:
#   - name: toolchain-gccarmnoneeabi
#     type: toolchain
#     version: "~1.120301.0"
#   - name: tool-jlink
#     type: uploader
#     version: "^1.78811.0"
#     optional: true
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter efm32-platform.yaml configuration",
	Long: `Creates an efm32-platform.yaml file in the current directory with a commented
template covering the framework and board directories, project variables and
radio stack selection.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Point framework_dir and boards_dir at your installation")
		info("  2. Run 'efm32-platform boards' to list the available boards")
		info("  3. Run 'efm32-platform build <board>' to see the build configuration")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
