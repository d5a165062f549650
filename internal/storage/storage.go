package storage

import (
	"time"

	"memprobe/internal/config"
	"memprobe/internal/domain"
)

// Storage persists and loads run results (e.g. for the faills viewer).
type Storage interface {
	Save(results []domain.CaseResult, failures []domain.Failure, duration time.Duration, workers int, budget int64) error
	Load() (*domain.RunOutput, error)
	// SaveOutput writes the full output (e.g. after resolve toggling in the viewer).
	SaveOutput(output *domain.RunOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
