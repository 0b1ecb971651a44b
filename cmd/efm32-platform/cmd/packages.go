package cmd

import (
	"fmt"
	"sort"

	"github.com/hbf/platform-siliconlabsefm32/pkg/efm32"
	"github.com/spf13/cobra"
)

var (
	pkgBoard          string
	pkgFrameworks     []string
	pkgUploadProtocol string
	pkgDebugTool      string
	pkgLock           bool
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Show the packages a project needs on the target host",
	Long: `Applies the project's board, frameworks and upload/debug choices to the
package list: mbed pins the toolchain, zephyr makes its build tools
mandatory, OpenOCD is pinned to a host build, and the J-Link package is
dropped unless something uses J-Link.

Use --lock to write the result to the package lockfile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.Packages(efm32.PackagesOptions{
			Variables: efm32.Variables{
				Board:          pkgBoard,
				Frameworks:     pkgFrameworks,
				UploadProtocol: pkgUploadProtocol,
				DebugTool:      pkgDebugTool,
			},
			Lock: pkgLock,
		})
		if err != nil {
			return err
		}

		for _, p := range result.Registry.Packages {
			opt := ""
			if p.Optional {
				opt = " " + styled("optional", "(optional)")
			}
			fmt.Printf("%-28s %s%s\n", p.Name, p.Version, opt)
		}

		patch := result.Patch
		pinned := make([]string, 0, len(patch.Versions))
		for name := range patch.Versions {
			pinned = append(pinned, name)
		}
		sort.Strings(pinned)
		for _, name := range pinned {
			detail("%s   %s → %s", styled("pinned", "pinned"), name, patch.Versions[name])
		}
		required := make([]string, 0, len(patch.Optional))
		for name, opt := range patch.Optional {
			if !opt {
				required = append(required, name)
			}
		}
		sort.Strings(required)
		for _, name := range required {
			detail("%s %s", styled("required", "required"), name)
		}
		for _, name := range patch.Remove {
			detail("%s  %s", styled("removed", "removed"), name)
		}

		if pkgLock {
			info("Package lockfile written.")
		}

		return writeOutput(result)
	},
}

func init() {
	packagesCmd.Flags().StringVar(&pkgBoard, "board", "", "board ID (overrides variables.board)")
	packagesCmd.Flags().StringSliceVar(&pkgFrameworks, "framework", nil, "framework: arduino, mbed or zephyr (overrides variables.frameworks)")
	packagesCmd.Flags().StringVar(&pkgUploadProtocol, "upload-protocol", "", "upload protocol (overrides variables.upload_protocol)")
	packagesCmd.Flags().StringVar(&pkgDebugTool, "debug-tool", "", "debug tool (overrides variables.debug_tool)")
	packagesCmd.Flags().BoolVar(&pkgLock, "lock", false, "write the resolved packages to the lockfile")
	rootCmd.AddCommand(packagesCmd)
}
