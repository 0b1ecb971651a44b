package main

import (
	"os"

	"github.com/hbf/platform-siliconlabsefm32/cmd/efm32-platform/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
