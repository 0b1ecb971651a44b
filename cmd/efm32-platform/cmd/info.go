package cmd

import (
	"fmt"

	"github.com/hbf/platform-siliconlabsefm32/internal/board"
	"github.com/hbf/platform-siliconlabsefm32/internal/config"
	"github.com/hbf/platform-siliconlabsefm32/internal/engine"
	"github.com/hbf/platform-siliconlabsefm32/internal/host"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show platform, host and configuration information",
	Long: `Displays the efm32-platform version, the config chain, the target host and
its systype, the framework and board directories, the radio stacks with the
defines that select them, and the debug probes with built-in defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		hr, err := loadConfigHierarchical() // ok if config doesn't exist
		if err != nil {
			detail("config: %v", err)
		}
		var cfg *config.Config
		if hr != nil {
			cfg = hr.Config
		}

		hostName := hostFlag
		if hostName == "" && cfg != nil {
			hostName = cfg.Host
		}
		h := host.Current()
		if hostName != "" {
			if h, err = host.Parse(hostName); err != nil {
				return fmt.Errorf("host: %w", err)
			}
		}

		if cfg != nil {
			if boardsDir != "" {
				cfg.BoardsDir = boardsDir
			}
			if frameworkDir != "" {
				cfg.FrameworkDir = frameworkDir
			}
		}

		var catalog *board.Catalog
		if cfg != nil && cfg.BoardsDir != "" {
			if catalog, err = board.LoadDir(cfg.BoardsDir); err != nil {
				errorf("%v", err)
			}
		}

		lock := lockfilePath
		if lock == "" && cfg != nil {
			lock = cfg.Lockfile
		}

		result, err := engine.Info(version, cfg, catalog, h, configPath, lock)
		if err != nil {
			return err
		}

		if hr != nil {
			for _, l := range hr.Layers {
				result.ConfigChain = append(result.ConfigChain, engine.ConfigLayerStatus{
					Level:  string(l.Level),
					Path:   l.Path,
					Loaded: l.Loaded,
				})
			}
		}

		fmt.Println(header("efm32-platform " + result.Version))

		if len(result.ConfigChain) > 1 {
			fmt.Println("  config chain:")
			for _, layer := range result.ConfigChain {
				status := "not found"
				if layer.Loaded {
					status = "loaded"
				}
				fmt.Printf("    %-10s %s (%s)\n", layer.Level+":", layer.Path, styled(status, status))
			}
		} else {
			fmt.Printf("  config:        %s\n", result.ConfigPath)
		}

		if result.LockPath != "" {
			fmt.Printf("  lockfile:      %s\n", result.LockPath)
		}
		fmt.Printf("  host:          %s (%s)\n", result.Host, result.Systype)
		fmt.Printf("  framework dir: %s\n", orNone(result.FrameworkDir))
		fmt.Printf("  boards dir:    %s (%d boards)\n", orNone(result.BoardsDir), result.Boards)

		fmt.Println("\n" + header("Radio stacks:"))
		for _, s := range result.Stacks {
			def := ""
			if s.Default {
				def = " " + styled("default", "(default)")
			}
			fmt.Printf("  %-12s ← %s%s\n", s.Kind, s.Marker, def)
		}

		fmt.Println("\n" + header("Debug probes with built-in defaults:"))
		for _, k := range result.DebugKinds {
			fmt.Printf("  %s\n", k)
		}

		return writeOutput(result)
	},
}

func orNone(s string) string {
	if s == "" {
		return styled("not set", "(not set)")
	}
	return s
}

func humanSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
