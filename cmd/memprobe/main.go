package main

import (
	"fmt"
	"os"

	"memprobe/internal/cli"
	"memprobe/internal/cli/commands"
	"memprobe/internal/config"

	_ "memprobe/internal/checks"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "memprobe",
		Short:   "Memory-allocation check harness",
		Long:    `A parallel harness for exercising the memory-allocation error handling of media-processing buffer allocators. Runs registered checks that provoke allocation failures and verify they surface as catchable errors.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
