package domain

import "time"

// CaseResult represents the result of executing a single check
type CaseResult struct {
	Case     Case          // The check that was executed
	Status   Status        // Outcome of the check
	Output   string        // Log output collected from the check
	Err      error         // Abnormal termination, set when Status is errored
	Stack    string        // Captured stack for errored checks
	Duration time.Duration // Time taken to execute
}

// Passed reports whether the check passed.
func (r CaseResult) Passed() bool {
	return r.Status == StatusPassed
}

// RunMeta contains metadata about a harness run
type RunMeta struct {
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	ErroredCases    int     `json:"errored_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	MemoryBudget    int64   `json:"memory_budget"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure for a harness run
type RunOutput struct {
	Meta    RunMeta   `json:"meta"`
	Details []Failure `json:"details"`
}
