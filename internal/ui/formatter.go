package ui

import (
	"fmt"
	"sort"

	"github.com/fatih/color"

	"memprobe/internal/config"
	"memprobe/internal/domain"
	"memprobe/internal/registry"
	"memprobe/internal/storage"
)

// Formatter formats and displays output
type Formatter struct {
	config  *config.Config
	storage storage.Storage
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, st storage.Storage) *Formatter {
	return &Formatter{
		config:  cfg,
		storage: st,
	}
}

// PrintMetaStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintMetaStats() error {
	output, err := f.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	meta := output.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Check Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	// Print table
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Total Checks")
	color.White("%-27d │\n", meta.TotalCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Passed Checks")
	color.Green("%-27d │\n", meta.PassedCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Failed Checks")
	color.Red("%-27d │\n", meta.FailedCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Errored Checks")
	color.Red("%-27d │\n", meta.ErroredCases)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Memory Budget")
	color.White("%-27s │\n", FormatBytes(meta.MemoryBudget))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Println()
	if meta.FailedCases == 0 && meta.ErroredCases == 0 {
		color.Green("✓ All checks passed!")
	} else {
		color.Red("✗ %d check(s) failed, %d errored", meta.FailedCases, meta.ErroredCases)
		fmt.Println()
		f.printFailedChecksTree(output.Details)
	}

	return nil
}

// printFailedChecksTree prints failures grouped by suite
func (f *Formatter) printFailedChecksTree(failures []domain.Failure) {
	if len(failures) == 0 {
		return
	}

	suiteMap := make(map[string][]domain.Failure)
	for _, failure := range failures {
		suiteMap[failure.Suite] = append(suiteMap[failure.Suite], failure)
	}

	var suites []string
	for suite := range suiteMap {
		suites = append(suites, suite)
	}
	sort.Strings(suites)

	for i, suite := range suites {
		isLastSuite := i == len(suites)-1
		if isLastSuite {
			color.Cyan("└── %s", suite)
		} else {
			color.Cyan("├── %s", suite)
		}

		suiteFailures := suiteMap[suite]
		for j, failure := range suiteFailures {
			isLastCase := j == len(suiteFailures)-1

			var prefix string
			if isLastSuite {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			marker := ""
			if failure.Status == domain.StatusErrored {
				marker = " " + color.YellowString("[panic]")
			}
			fmt.Printf("%s%s%s\n", prefix, color.RedString(failure.CheckName), marker)
		}
	}
}

// PrintCheckList prints registered checks grouped by suite.
// failedIDs is optional; checks in this set are marked with [F] in red (from last run).
func (f *Formatter) PrintCheckList(cases []registry.Case, failedIDs map[string]struct{}) error {
	color.Green("Found %d check(s):\n", len(cases))

	suiteMap := make(map[string][]registry.Case)
	var suites []string
	for _, c := range cases {
		if _, seen := suiteMap[c.Suite]; !seen {
			suites = append(suites, c.Suite)
		}
		suiteMap[c.Suite] = append(suiteMap[c.Suite], c)
	}
	sort.Strings(suites)

	for i, suite := range suites {
		isLastSuite := i == len(suites)-1
		if isLastSuite {
			color.Cyan("└── %s", suite)
		} else {
			color.Cyan("├── %s", suite)
		}

		suiteCases := suiteMap[suite]
		for j, c := range suiteCases {
			isLastCase := j == len(suiteCases)-1

			var prefix string
			if isLastSuite {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			failMarker := ""
			if len(failedIDs) > 0 {
				if _, ok := failedIDs[c.ID()]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			fmt.Printf("%s%s%s\n", prefix, color.YellowString(c.Name), failMarker)
		}

		if i < len(suites)-1 {
			fmt.Println()
		}
	}

	return nil
}

// PrintWorkerPreview shows how checks would be distributed across workers.
func (f *Formatter) PrintWorkerPreview(distribution [][]registry.Case) {
	for i, bucket := range distribution {
		color.Cyan("worker %d (%d check(s)):", i+1, len(bucket))
		for _, c := range bucket {
			fmt.Printf("  %s\n", c.ID())
		}
	}
}

// FormatBytes renders a byte count in a human-readable unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
