package searchtests

import (
	"net/http"
	"testing"

	"github.com/localkb/search-contract-tests/framework"
	"github.com/localkb/search-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioNames(scenarios []Scenario) []string {
	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	return names
}

func resultNames(results framework.Results) []string {
	var names []string
	for _, r := range results.Tests {
		names = append(names, r.TestID.String())
	}
	return names
}

func TestSuitePassesAgainstConformingServer(t *testing.T) {
	stub := &stubSearchServer{}
	withServer(t, stub.handler(), func(h *framework.TestHarness) {
		results := RunTestSuite(h, nil, nil, SuiteOptions{})

		for _, f := range results.Failures {
			t.Errorf("%s failed: %v", f.TestID, f.Errors)
		}
		assert.True(t, results.OK())
		assert.Equal(t, scenarioNames(AllScenarios()), resultNames(results))
		assert.Equal(t, 0, results.ExitCode())
	})
}

func TestSuiteRequestsReachServerInOrder(t *testing.T) {
	stub := &stubSearchServer{}
	withServer(t, stub.handler(), func(h *framework.TestHarness) {
		RunTestSuite(h, nil, nil, SuiteOptions{})

		assert.Equal(t, [][]string{
			{"MSX computer"},
			{"x68000", "Sharp computer"},
			{"retro computer", "vintage"},
			nil,
			{"test"},
			nil,
			nil,
		}, stub.searches())
	})
}

func TestSuiteFailsOnlyEmptyScenariosWhenEmptyQueryMatchesEverything(t *testing.T) {
	// Treats an empty query as "match everything" instead of "no search".
	matchAll := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [{"link": "a", "title": "b", "snippet": "c"}],
			"took_ms": 3, "total": 120, "engine": "manticore"}`))
	})
	handler := httphelpers.HandlerForPath(servicedef.SearchPath, matchAll, httphelpers.HandlerWithStatus(200))
	withServer(t, handler, func(h *framework.TestHarness) {
		results := RunTestSuite(h, nil, nil, SuiteOptions{})

		require.Len(t, results.Tests, len(AllScenarios()))
		var failed []string
		for _, f := range results.Failures {
			failed = append(failed, f.TestID.String())
		}
		assert.Equal(t, []string{"empty query", "empty query is idempotent"}, failed)
		assert.Contains(t, results.Failures[1].Errors[0].Error(), "attempt 1 of 2")
		assert.Equal(t, 1, results.ExitCode())
	})
}

func TestSuiteContinuesAfterTransportErrors(t *testing.T) {
	handler := httphelpers.HandlerForMethod("GET", httphelpers.HandlerWithStatus(200), httphelpers.BrokenConnectionHandler())
	withServer(t, handler, func(h *framework.TestHarness) {
		results := RunTestSuite(h, nil, nil, SuiteOptions{})

		assert.Len(t, results.Tests, len(AllScenarios()))
		assert.Len(t, results.Failures, len(AllScenarios()))
		for _, f := range results.Failures {
			require.NotEmpty(t, f.Errors)
			assert.Contains(t, f.Errors[0].Error(), framework.ErrTransport.Error())
		}
	})
}

func TestSuiteReportsMissingFields(t *testing.T) {
	withServer(t, searchHandler(200, `{"results": []}`), func(h *framework.TestHarness) {
		results := RunTestSuite(h, nil, nil, SuiteOptions{Scenarios: []Scenario{
			{Name: "simple query", Shape: ShapeSimple},
		}})

		require.Len(t, results.Failures, 1)
		msg := results.Failures[0].Errors[0].Error()
		assert.Contains(t, msg, `missing required field "took_ms"`)
		assert.Contains(t, msg, `missing required field "total"`)
		assert.Contains(t, msg, `missing required field "engine"`)
	})
}

func TestSuiteHonorsFilter(t *testing.T) {
	stub := &stubSearchServer{}
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^empty"))
	withServer(t, stub.handler(), func(h *framework.TestHarness) {
		results := RunTestSuite(h, filters.AsFilter, nil, SuiteOptions{})

		passed, run := results.Counts()
		assert.Equal(t, 2, run)
		assert.Equal(t, 2, passed)
		assert.Len(t, stub.searches(), 3)
	})
}

func TestScenarioDescribe(t *testing.T) {
	s := Scenario{Name: "empty twice", Shape: ShapeEmpty, Attempts: 2}
	d := s.Describe()
	assert.Contains(t, d, "empty twice: {")
	assert.Contains(t, d, `"query":""`)
	assert.Contains(t, d, " (x2)")
}
