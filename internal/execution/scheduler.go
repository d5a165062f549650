package execution

import "memprobe/internal/registry"

// Scheduler distributes checks across workers
type Scheduler interface {
	Schedule(cases []registry.Case, workerCount int) [][]registry.Case
}

// RoundRobinScheduler distributes checks evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes checks evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(cases []registry.Case, workerCount int) [][]registry.Case {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]registry.Case, workerCount)
	for i := range distribution {
		distribution[i] = make([]registry.Case, 0)
	}

	for i, c := range cases {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], c)
	}

	return distribution
}
