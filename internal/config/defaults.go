package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "check-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultWorkers is the default number of parallel workers
	DefaultWorkers = 4
	// DefaultMemoryBudget is the default per-check allocator budget (64 MiB)
	DefaultMemoryBudget = int64(64) << 20
)
