package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"memprobe/internal/config"
	"memprobe/internal/execution"
	"memprobe/internal/registry"
	"memprobe/internal/storage"
	"memprobe/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *registry.Filter
	scheduler execution.Scheduler
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *registry.Filter,
	scheduler execution.Scheduler,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		scheduler: scheduler,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases := registry.Default.All()
	cases = lc.filter.BySuite(cases, lc.config.Flags.Suites)
	cases = lc.filter.ByName(cases, lc.config.Flags.Filter)

	if len(cases) == 0 {
		color.Yellow("No checks found")
		return nil
	}

	if lc.config.Flags.ByWorker {
		lc.formatter.PrintWorkerPreview(lc.scheduler.Schedule(cases, lc.config.Workers))
		return nil
	}

	// Mark checks that failed in the last run, when one exists.
	failedIDs := make(map[string]struct{})
	if output, err := lc.storage.Load(); err == nil {
		for _, f := range output.Details {
			failedIDs[f.Suite+"/"+f.CheckName] = struct{}{}
		}
	}

	return lc.formatter.PrintCheckList(cases, failedIDs)
}
