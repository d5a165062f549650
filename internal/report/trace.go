package report

import (
	"regexp"
	"strconv"
	"strings"

	"memprobe/internal/domain"
)

// Parser turns raw check results into structured failures for storage
// and the failure viewer.
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// sourceLine matches the location line under each function in a
// goroutine stack: "\t/path/to/file.go:123 +0x1e"
var sourceLine = regexp.MustCompile(`^\t(.+\.go):(\d+)(?:\s|$)`)

// Failures extracts a Failure for every non-passing result.
func (p *Parser) Failures(results []domain.CaseResult) []domain.Failure {
	var failures []domain.Failure
	for _, r := range results {
		if r.Passed() {
			continue
		}
		failures = append(failures, p.failure(r))
	}
	return failures
}

func (p *Parser) failure(r domain.CaseResult) domain.Failure {
	f := domain.Failure{
		CheckName:  r.Case.Name,
		Suite:      r.Case.Suite,
		Status:     r.Status,
		Message:    strings.TrimRight(r.Output, "\n"),
		StackTrace: []string{},
	}

	if r.Status == domain.StatusErrored {
		if r.Err != nil {
			if f.Message != "" {
				f.Message += "\n"
			}
			f.Message += r.Err.Error()
		}
		frames, file, line := p.ParseStack(r.Stack)
		f.StackTrace = frames
		f.File = file
		f.Line = line
	}

	return f
}

// ParseStack parses a goroutine stack dump into "file.go:123 function"
// frames and picks the failing file:line — the innermost frame that is
// neither runtime machinery nor the harness itself.
func (p *Parser) ParseStack(stack string) (frames []string, file string, line int) {
	lines := strings.Split(stack, "\n")

	var function string
	for _, l := range lines {
		if !strings.HasPrefix(l, "\t") {
			// Function lines look like "pkg/path.Func(...)"; keep the
			// last seen one to pair with its location line.
			if strings.Contains(l, "(") || strings.Contains(l, ".") {
				function = strings.TrimSpace(l)
			}
			continue
		}

		m := sourceLine.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		frameFile := m[1]
		frameLine, _ := strconv.Atoi(m[2])
		frames = append(frames, frameFile+":"+m[2]+" "+function)

		if file == "" && p.isCheckFrame(frameFile, function) {
			file = frameFile
			line = frameLine
		}
	}

	return frames, file, line
}

// isCheckFrame reports whether a frame points into check code rather
// than the runtime or the harness packages.
func (p *Parser) isCheckFrame(file, function string) bool {
	if strings.Contains(file, "/runtime/") || strings.Contains(file, "/runtime.") {
		return false
	}
	if strings.HasPrefix(function, "runtime.") || strings.HasPrefix(function, "runtime/") {
		return false
	}
	if strings.Contains(function, "memprobe/internal/registry.") {
		return false
	}
	if strings.Contains(function, "memprobe/internal/execution.") {
		return false
	}
	return strings.HasSuffix(file, ".go")
}
