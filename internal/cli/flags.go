package cli

import "memprobe/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workers    int
	Budget     int64
	Filter     string
	Suites     []string
	FailFast   bool
	OnlyFailed bool
	Record     bool
	OpenFaills bool
	ByWorker   bool
	Cases      bool
	Limit      int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:    f.Workers,
		Budget:     f.Budget,
		Filter:     f.Filter,
		Suites:     f.Suites,
		FailFast:   f.FailFast,
		OnlyFailed: f.OnlyFailed,
		Record:     f.Record,
		OpenFaills: f.OpenFaills,
		ByWorker:   f.ByWorker,
		Cases:      f.Cases,
		Limit:      f.Limit,
	}
}
