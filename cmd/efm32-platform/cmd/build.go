package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbf/platform-siliconlabsefm32/pkg/efm32"
	"github.com/spf13/cobra"
)

var (
	buildDefines []string
	buildFlags   string
)

var buildCmd = &cobra.Command{
	Use:   "build <board>",
	Short: "Show the build configuration for a board",
	Long: `Resolves the radio stack and the Arduino framework libraries for a board and
prints the resulting build variables (CPPDEFINES, CPPPATH, LIBS, LINKFLAGS,
LDSCRIPT_PATH, ...).

The stack is chosen by the first ARDUINO_SILABS_STACK_* define present in the
board's extra flags, the project build flags or --define; Matter is the default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		result, err := client.Build(args[0], efm32.BuildOptions{
			Defines:    buildDefines,
			BuildFlags: buildFlags,
		})
		if err != nil {
			return err
		}

		plan := result.Plan
		info("Board %s: %s stack", plan.Board, plan.Stack.Kind)
		detail("stack dir:     %s", plan.Stack.BaseDir)
		ld := plan.Stack.LinkerScript
		if plan.Stack.ExplicitLinkerScript {
			ld += " (board)"
		}
		detail("linker script: %s", ld)
		for _, lib := range plan.Libraries {
			detail("library:       %s ← %s", lib.Name, lib.Source)
		}

		vars := make([]string, 0, len(result.Env))
		for v := range result.Env {
			vars = append(vars, v)
		}
		sort.Strings(vars)
		for _, v := range vars {
			fmt.Printf("%s=%s\n", v, strings.Join(result.Env[v], " "))
		}

		return writeOutput(result)
	},
}

func init() {
	buildCmd.Flags().StringSliceVarP(&buildDefines, "define", "D", nil, "extra preprocessor define, e.g. ARDUINO_SILABS_STACK_NONE")
	buildCmd.Flags().StringVar(&buildFlags, "build-flags", "", "project build flags (overrides variables.build_flags)")
	rootCmd.AddCommand(buildCmd)
}
