package domain

// Status is the outcome of a single check.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	// StatusErrored means the check panicked or otherwise terminated
	// abnormally instead of reporting through its handle.
	StatusErrored Status = "errored"
)

// Case identifies a registered check.
type Case struct {
	Suite string // Suite the check belongs to
	Name  string // Human-readable check name, unique within the suite
}

// ID returns the registry key for the case.
func (c Case) ID() string {
	return c.Suite + "/" + c.Name
}
