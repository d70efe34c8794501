package framework

import (
	"strings"
	"time"
)

// Results holds the outcome of every test in a run, in the order the tests were started.
// Failures is the subset of Tests that failed.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

// TestResult is the outcome of one test.
type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Elapsed    time.Duration
}

func (r TestResult) Passed() bool {
	return !r.Skipped && len(r.Errors) == 0
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed and the number that were run, not
// counting skipped tests.
func (r Results) Counts() (passed, run int) {
	for _, t := range r.Tests {
		if t.Skipped {
			continue
		}
		run++
		if t.Passed() {
			passed++
		}
	}
	return passed, run
}

// ExitCode is the process status for these results: 0 if nothing failed, otherwise 1.
func (r Results) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}
