package commands

import (
	"fmt"

	"memprobe/internal/config"
	"memprobe/internal/execution"
	"memprobe/internal/registry"
	"memprobe/internal/report"
	"memprobe/internal/storage"
	"memprobe/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *registry.Filter
	executor  *execution.WorkerPool
	parser    *report.Parser
	storage   storage.Storage
	history   *storage.HistoryStore
	formatter *ui.Formatter
	viewer    *ui.ErrorViewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *registry.Filter,
	executor *execution.WorkerPool,
	parser *report.Parser,
	st storage.Storage,
	history *storage.HistoryStore,
	formatter *ui.Formatter,
	viewer *ui.ErrorViewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		executor:  executor,
		parser:    parser,
		storage:   st,
		history:   history,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Select checks
	cases := registry.Default.All()
	cases = rc.filter.BySuite(cases, rc.config.Flags.Suites)
	cases = rc.filter.ByName(cases, rc.config.Flags.Filter)

	if rc.config.Flags.OnlyFailed {
		var err error
		cases, err = rc.onlyFailed(cases)
		if err != nil {
			return err
		}
	}

	if len(cases) == 0 {
		color.Yellow("No checks to execute")
		return nil
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBar(len(cases))
	rc.executor.SetProgress(progressBar)

	// Execute checks
	results, duration, err := rc.executor.ExecuteWithOptions(cases, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Structure failures and save results
	failures := rc.parser.Failures(results)
	if err := rc.storage.Save(results, failures, duration, rc.config.Workers, rc.config.MemoryBudget); err != nil {
		return fmt.Errorf("failed to save check results: %w", err)
	}

	output, err := rc.storage.Load()
	if err != nil {
		return err
	}

	// Record run history if requested
	if rc.config.Flags.Record {
		if err := rc.history.Record(output.Meta); err != nil {
			color.Yellow("warning: could not record run history: %v", err)
		}
	}

	// Print stats
	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenFaills && len(output.Details) > 0 {
		return rc.viewer.View(output)
	}
	return nil
}

// onlyFailed keeps only the checks that failed in the last saved run.
func (rc *RunCommand) onlyFailed(cases []registry.Case) ([]registry.Case, error) {
	output, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no previous run to take failures from: %w", err)
	}

	failedIDs := make(map[string]struct{}, len(output.Details))
	for _, f := range output.Details {
		failedIDs[f.Suite+"/"+f.CheckName] = struct{}{}
	}

	var kept []registry.Case
	for _, c := range cases {
		if _, ok := failedIDs[c.ID()]; ok {
			kept = append(kept, c)
		}
	}
	return kept, nil
}
