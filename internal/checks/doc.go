// Package checks holds the memory checks the harness runs. Each check
// registers itself by name at init time and runs against a fresh
// bounded allocator, so exhaustion is provoked by the check's own
// requests and never by the machine's actual memory state.
package checks
