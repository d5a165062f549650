package execution

import (
	"time"

	"memprobe/internal/domain"
	"memprobe/internal/registry"
)

// Executor executes checks and returns results
type Executor interface {
	Execute(cases []registry.Case) ([]domain.CaseResult, time.Duration, error)
}
