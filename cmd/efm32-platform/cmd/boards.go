package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the available boards",
	Long: `Lists every board manifest in the boards directory, with its MCU, upload
protocols and debug tools. Debug tools include the defaults filled in for
the probes each board supports. Use --verbose for flash and RAM sizes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		boards, err := client.Boards()
		if err != nil {
			return err
		}

		if len(boards) == 0 {
			info("No boards found.")
			return writeOutput(boards)
		}

		fmt.Println(header(fmt.Sprintf("%-24s %-28s %s", "ID", "MCU", "NAME")))
		for _, b := range boards {
			fmt.Printf("%-24s %-28s %s\n", b.ID, b.MCU, b.Name)
			detail("frameworks:  %s", strings.Join(b.Frameworks, ", "))
			detail("protocols:   %s", strings.Join(b.Protocols, ", "))
			detail("debug tools: %s", strings.Join(b.DebugTools, ", "))
			if b.Flash > 0 || b.RAM > 0 {
				detail("memory:      %s flash, %s RAM", humanSize(b.Flash), humanSize(b.RAM))
			}
		}
		info("\n%d board(s)", len(boards))

		return writeOutput(boards)
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}
