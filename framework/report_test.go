package framework

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResults() Results {
	failed := TestResult{
		TestID:  TestID{Path: []string{"empty query"}},
		Errors:  []error{errors.New("total was 3, expected 0"), errors.New("results not empty")},
		Elapsed: time.Millisecond * 12,
	}
	return Results{
		Tests: []TestResult{
			{TestID: TestID{Path: []string{"simple query"}}, Elapsed: time.Millisecond * 5},
			failed,
			{TestID: TestID{Path: []string{"response format"}}, Skipped: true, SkipReason: "excluded by filter parameters"},
		},
		Failures: []TestResult{failed},
	}
}

func TestCountsIgnoreSkippedTests(t *testing.T) {
	passed, run := sampleResults().Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 2, run)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, sampleResults().ExitCode())
	assert.Equal(t, 0, Results{Tests: []TestResult{{TestID: TestID{Path: []string{"a"}}}}}.ExitCode())
	assert.Equal(t, 0, Results{}.ExitCode())
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, sampleResults())
	out := buf.String()
	assert.Contains(t, out, "PASSED   simple query")
	assert.Contains(t, out, "FAILED   empty query")
	assert.Contains(t, out, "total was 3, expected 0")
	assert.Contains(t, out, "SKIPPED  response format")
	assert.Contains(t, out, "1 of 2 scenarios passed (1 skipped)")
}

func TestWriteReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rep Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.False(t, rep.OK)
	assert.Equal(t, 1, rep.Passed)
	assert.Equal(t, 2, rep.Run)
	assert.Equal(t, 1, rep.Skipped)
	require.Len(t, rep.Tests, 3)
	assert.Equal(t, ReportEntry{
		ID:        "empty query",
		Status:    StatusFailed,
		ElapsedMS: 12,
		Errors:    []string{"total was 3, expected 0", "results not empty"},
	}, rep.Tests[1])
}

func TestWriteReportYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yml")
	require.NoError(t, WriteReport(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rep Report
	require.NoError(t, yaml.Unmarshal(data, &rep))
	assert.Equal(t, StatusSkipped, rep.Tests[2].Status)
	assert.Equal(t, "excluded by filter parameters", rep.Tests[2].SkipReason)
}
