package cmd

import (
	"fmt"
	"strings"

	"github.com/hbf/platform-siliconlabsefm32/pkg/efm32"
	"github.com/spf13/cobra"
)

var (
	debugTool  string
	debugSpeed string
)

var debugCmd = &cobra.Command{
	Use:   "debug <board>",
	Short: "Show the debug session for a board",
	Long: `Fills in the default debug tool entries for the probes a board supports
(blackmagic, jlink, cmsis-dap), picks the tool to use and prints the GDB
server command with the requested adapter speed.

Without --tool the board's default tools are tried first, then its onboard
probe, then the first built-in probe it supports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.Debug(args[0], efm32.DebugOptions{Tool: debugTool, Speed: debugSpeed})
		if err != nil {
			return err
		}

		for _, s := range result.Synthesized {
			detail("added default entry for %s", s.Name)
		}

		info("Board %s: debug tool %s", result.Board, result.Session.Tool)
		if srv := result.Session.Server; srv != nil {
			fmt.Printf("%s %s\n", srv.Executable, strings.Join(result.Arguments, " "))
			detail("package: %s", srv.Package)
		} else {
			info("  no GDB server; the probe exposes one itself")
		}

		return writeOutput(result)
	},
}

func init() {
	debugCmd.Flags().StringVar(&debugTool, "tool", "", "debug tool to use (default: the board's default)")
	debugCmd.Flags().StringVar(&debugSpeed, "speed", "", "adapter speed, e.g. 4000 (overrides variables.debug_speed)")
	rootCmd.AddCommand(debugCmd)
}
