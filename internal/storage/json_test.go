package storage

import (
	"testing"
	"time"

	"memprobe/internal/config"
	"memprobe/internal/domain"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := NewJSONStorage(cfg)

	results := []domain.CaseResult{
		{Case: domain.Case{Suite: "memory", Name: "ok"}, Status: domain.StatusPassed},
		{Case: domain.Case{Suite: "memory", Name: "bad"}, Status: domain.StatusFailed},
		{Case: domain.Case{Suite: "memory", Name: "boom"}, Status: domain.StatusErrored},
	}
	failures := []domain.Failure{
		{CheckName: "bad", Suite: "memory", Status: domain.StatusFailed, Message: "expected the signal"},
		{CheckName: "boom", Suite: "memory", Status: domain.StatusErrored, Message: "check panicked"},
	}

	if err := st.Save(results, failures, 1500*time.Millisecond, 4, 1<<20); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	output, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	meta := output.Meta
	if meta.TotalCases != 3 || meta.PassedCases != 1 || meta.FailedCases != 1 || meta.ErroredCases != 1 {
		t.Errorf("unexpected meta counts: %+v", meta)
	}
	if meta.DurationSeconds != 1.5 {
		t.Errorf("expected 1.5s duration, got %f", meta.DurationSeconds)
	}
	if meta.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", meta.Workers)
	}
	if meta.MemoryBudget != 1<<20 {
		t.Errorf("expected budget %d, got %d", int64(1)<<20, meta.MemoryBudget)
	}

	if len(output.Details) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(output.Details))
	}
	if output.Details[0].CheckName != "bad" {
		t.Errorf("unexpected first failure: %+v", output.Details[0])
	}
}

func TestJSONStorage_LoadMissingFile(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := NewJSONStorage(cfg)

	if _, err := st.Load(); err == nil {
		t.Error("expected an error when no results file exists")
	}
}

func TestJSONStorage_ResolveRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := NewJSONStorage(cfg)

	output := &domain.RunOutput{
		Meta: domain.RunMeta{TotalCases: 1, FailedCases: 1},
		Details: []domain.Failure{
			{CheckName: "bad", Suite: "memory", Resolved: true},
		},
	}
	if err := st.SaveOutput(output); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !loaded.Details[0].Resolved {
		t.Error("resolved flag should survive the round trip")
	}
}
