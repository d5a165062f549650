package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}
	if cfg.MemoryBudget != DefaultMemoryBudget {
		t.Errorf("expected MemoryBudget %d, got %d", DefaultMemoryBudget, cfg.MemoryBudget)
	}
}

func TestConfig_Apply(t *testing.T) {
	tests := []struct {
		name        string
		flags       Flags
		wantWorkers int
		wantBudget  int64
	}{
		{
			name:        "zero flags keep defaults",
			flags:       Flags{},
			wantWorkers: DefaultWorkers,
			wantBudget:  DefaultMemoryBudget,
		},
		{
			name:        "workers override",
			flags:       Flags{Workers: 8},
			wantWorkers: 8,
			wantBudget:  DefaultMemoryBudget,
		},
		{
			name:        "budget override",
			flags:       Flags{Budget: 1 << 10},
			wantWorkers: DefaultWorkers,
			wantBudget:  1 << 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Apply(tt.flags)
			if cfg.Workers != tt.wantWorkers {
				t.Errorf("expected %d workers, got %d", tt.wantWorkers, cfg.Workers)
			}
			if cfg.MemoryBudget != tt.wantBudget {
				t.Errorf("expected budget %d, got %d", tt.wantBudget, cfg.MemoryBudget)
			}
		})
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	path := cfg.GetOutputPath()
	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	want := filepath.Join(cfg.ProjectPath, DefaultOutputJSONDir, DefaultOutputJSONFile)
	if path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
}

func TestConfig_LoadEnv(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv("MEMPROBE_WORKERS", "12")
		t.Setenv("MEMPROBE_BUDGET", "2048")
		cfg.LoadEnv()
		if cfg.Workers != 12 {
			t.Errorf("expected 12 workers, got %d", cfg.Workers)
		}
		if cfg.MemoryBudget != 2048 {
			t.Errorf("expected budget 2048, got %d", cfg.MemoryBudget)
		}
	})

	t.Run("garbage values are ignored", func(t *testing.T) {
		t.Setenv("MEMPROBE_WORKERS", "many")
		t.Setenv("MEMPROBE_BUDGET", "-5")
		cfg := New()
		cfg.ProjectPath = t.TempDir()
		cfg.LoadEnv()
		if cfg.Workers != DefaultWorkers {
			t.Errorf("expected default workers, got %d", cfg.Workers)
		}
		if cfg.MemoryBudget != DefaultMemoryBudget {
			t.Errorf("expected default budget, got %d", cfg.MemoryBudget)
		}
	})
}

func TestConfig_GetHistoryDSN(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USERNAME", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_DATABASE", "")

	cfg := New()

	t.Run("defaults", func(t *testing.T) {
		dsn := cfg.GetHistoryDSN()
		if !strings.Contains(dsn, "tcp(127.0.0.1:3306)") {
			t.Errorf("expected default host/port in DSN, got %s", dsn)
		}
		if !strings.Contains(dsn, "/memprobe") {
			t.Errorf("expected default database in DSN, got %s", dsn)
		}
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_DATABASE", "harness")
		dsn := cfg.GetHistoryDSN()
		if !strings.Contains(dsn, "tcp(db.internal:3306)") {
			t.Errorf("expected env host in DSN, got %s", dsn)
		}
		if !strings.Contains(dsn, "/harness") {
			t.Errorf("expected env database in DSN, got %s", dsn)
		}
	})
}
