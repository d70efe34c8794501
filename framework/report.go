package framework

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Report is the machine-readable form of Results.
type Report struct {
	OK      bool          `json:"ok" yaml:"ok"`
	Passed  int           `json:"passed" yaml:"passed"`
	Run     int           `json:"run" yaml:"run"`
	Skipped int           `json:"skipped" yaml:"skipped"`
	Tests   []ReportEntry `json:"tests" yaml:"tests"`
}

type ReportEntry struct {
	ID         string   `json:"id" yaml:"id"`
	Status     string   `json:"status" yaml:"status"`
	ElapsedMS  int64    `json:"elapsedMs" yaml:"elapsedMs"`
	Errors     []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	SkipReason string   `json:"skipReason,omitempty" yaml:"skipReason,omitempty"`
}

func (r TestResult) Status() string {
	switch {
	case r.Skipped:
		return StatusSkipped
	case len(r.Errors) == 0:
		return StatusPassed
	default:
		return StatusFailed
	}
}

// Report converts the results for serialization.
func (r Results) Report() Report {
	passed, run := r.Counts()
	rep := Report{
		OK:      r.OK(),
		Passed:  passed,
		Run:     run,
		Skipped: len(r.Tests) - run,
		Tests:   make([]ReportEntry, 0, len(r.Tests)),
	}
	for _, t := range r.Tests {
		e := ReportEntry{
			ID:         t.TestID.String(),
			Status:     t.Status(),
			ElapsedMS:  t.Elapsed.Milliseconds(),
			SkipReason: t.SkipReason,
		}
		for _, err := range t.Errors {
			e.Errors = append(e.Errors, err.Error())
		}
		rep.Tests = append(rep.Tests, e)
	}
	return rep
}

// PrintResults writes a one-line status for each test followed by the totals.
func PrintResults(w io.Writer, results Results) {
	fmt.Fprintln(w, "Test results:")
	for _, t := range results.Tests {
		fmt.Fprintf(w, "  %-8s %s\n", strings.ToUpper(t.Status()), t.TestID)
		if t.Status() == StatusFailed {
			for _, err := range t.Errors {
				for _, line := range strings.Split(err.Error(), "\n") {
					fmt.Fprintf(w, "           %s\n", line)
				}
			}
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(results))
}

// Summary is a single line with the pass count, such as "4 of 5 scenarios passed".
func Summary(results Results) string {
	passed, run := results.Counts()
	s := fmt.Sprintf("%d of %d scenarios passed", passed, run)
	if skipped := len(results.Tests) - run; skipped > 0 {
		s += fmt.Sprintf(" (%d skipped)", skipped)
	}
	return s
}

// WriteReport writes the results to path, as YAML if the file extension is .yaml or .yml
// and as JSON otherwise.
func WriteReport(path string, results Results) error {
	rep := results.Report()
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(rep)
	default:
		data, err = json.MarshalIndent(rep, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
