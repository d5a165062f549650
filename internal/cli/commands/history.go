package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"memprobe/internal/config"
	"memprobe/internal/storage"
	"memprobe/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config  *config.Config
	history *storage.HistoryStore
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, history *storage.HistoryStore) *HistoryCommand {
	return &HistoryCommand{
		config:  cfg,
		history: history,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	entries, err := hc.history.List(hc.config.Flags.Limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		color.Yellow("No recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECORDED\tTOTAL\tPASSED\tFAILED\tERRORED\tDURATION\tWORKERS\tBUDGET")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%.2fs\t%d\t%s\n",
			e.ID,
			e.RecordedAt.Format("2006-01-02 15:04:05"),
			e.Meta.TotalCases,
			e.Meta.PassedCases,
			e.Meta.FailedCases,
			e.Meta.ErroredCases,
			e.Meta.DurationSeconds,
			e.Meta.Workers,
			ui.FormatBytes(e.Meta.MemoryBudget),
		)
	}
	return w.Flush()
}
