package commands

import (
	"memprobe/internal/cli"
	"memprobe/internal/config"
	"memprobe/internal/execution"
	"memprobe/internal/registry"
	"memprobe/internal/report"
	"memprobe/internal/storage"
	"memprobe/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Faills  *FaillsCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	filter := registry.NewFilter()
	runner := execution.NewRunner(cfg)
	scheduler := execution.NewRoundRobinScheduler()
	executor := execution.NewWorkerPool(cfg, runner)
	reportParser := report.NewParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	historyStore := storage.NewHistoryStore(cfg)
	formatter := ui.NewFormatter(cfg, jsonStorage)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, filter, executor, reportParser, jsonStorage, historyStore, formatter, errorViewer),
		List:    NewListCommand(cfg, filter, scheduler, formatter, jsonStorage),
		Faills:  NewFaillsCommand(cfg, jsonStorage, errorViewer),
		History: NewHistoryCommand(cfg, historyStore),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run memory checks in parallel",
		Long:  "Execute the registered memory checks using parallel workers",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.LoadEnv()
			cfg.Apply(flags.ToConfigFlags())
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of parallel workers (default 4)")
	runCmd.Flags().Int64VarP(&flags.Budget, "budget", "b", 0, "Per-check allocator budget in bytes (default 64 MiB)")
	runCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter checks by name pattern (supports wildcards, e.g. '*out-of-memory*' or 'memory/*')")
	runCmd.Flags().StringSliceVarP(&flags.Suites, "suite", "s", nil, "Run only the given suite(s)")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first check failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only checks that failed in the last run")
	runCmd.Flags().BoolVar(&flags.Record, "record", false, "Record the run's summary in the MySQL history store")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered checks",
		Long:  "List all registered memory checks without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Apply(flags.ToConfigFlags())
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Filter checks by name pattern (supports wildcards)")
	listCmd.Flags().StringSliceVarP(&flags.Suites, "suite", "s", nil, "List only the given suite(s)")
	listCmd.Flags().BoolVar(&flags.ByWorker, "by-worker", false, "Preview how checks would be distributed across workers")
	listCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of workers for the --by-worker preview (default 4)")
	rootCmd.AddCommand(listCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View check failures interactively",
		Long:  "Display check failures from the last run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	rootCmd.AddCommand(faillsCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run history",
		Long:  "List runs recorded in the MySQL history store, newest first",
		RunE:  c.History.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.LoadEnv()
			cfg.Apply(flags.ToConfigFlags())
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
