package cmd

import (
	"fmt"
	"os"

	"github.com/hbf/platform-siliconlabsefm32/internal/config"
	"github.com/hbf/platform-siliconlabsefm32/pkg/efm32"
	"gopkg.in/yaml.v3"
)

// newClient creates a library client from the global flags.
func newClient() (*efm32.Client, error) {
	return efm32.New(efm32.Options{
		ConfigPath:   configPath,
		LockfilePath: lockfilePath,
		BoardsDir:    boardsDir,
		FrameworkDir: frameworkDir,
		Host:         hostFlag,
	})
}

// loadConfigHierarchical reads the system, user and project configs.
func loadConfigHierarchical() (*config.HierarchicalResult, error) {
	hr, err := config.LoadHierarchical(config.HierarchicalOptions{ProjectPath: configPath})
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return hr, nil
}

// writeOutput writes v as YAML to the --output destination, if any.
func writeOutput(v any) error {
	if outputPath == "" {
		return nil
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if outputPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing output %s: %w", outputPath, err)
	}
	detail("wrote %s", outputPath)
	return nil
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
