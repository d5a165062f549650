package domain

// Failure represents a failed or errored check
type Failure struct {
	CheckName  string   `json:"check_name"`
	Suite      string   `json:"suite"`
	Status     Status   `json:"status"`
	Message    string   `json:"message"`
	StackTrace []string `json:"stack_trace"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
