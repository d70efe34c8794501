package searchtests

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/localkb/search-contract-tests/framework"
	"github.com/localkb/search-contract-tests/servicedef"
)

// Scenario is one fixed request shape paired with what the response must satisfy.
type Scenario struct {
	Name   string
	Shape  Shape
	Expect Expectation

	// Attempts is how many times the same request is sent, each response being
	// validated on its own. Zero means once.
	Attempts int
}

// SuiteOptions adjusts how RunTestSuite talks to the server.
type SuiteOptions struct {
	// SearchPath is the path of the search endpoint. Empty means servicedef.SearchPath.
	SearchPath string

	// Pause is slept between scenarios as a courtesy to the server. It has no effect on
	// the results.
	Pause time.Duration

	// Scenarios replaces the built-in scenario list if non-nil.
	Scenarios []Scenario
}

// AllScenarios returns the standard scenarios in the order they run.
func AllScenarios() []Scenario {
	return []Scenario{
		{Name: "simple query", Shape: ShapeSimple, Expect: Expectation{MaxResults: simpleCount}},
		{Name: "queries array", Shape: ShapeMulti, Expect: Expectation{MaxResults: multiCount}},
		{Name: "embedded JSON query", Shape: ShapeEmbedded},
		{Name: "empty query", Shape: ShapeEmpty, Expect: Expectation{NoResults: true}},
		{Name: "response format", Shape: ShapeFormat, Expect: Expectation{MaxResults: formatCount}},
		{Name: "empty query is idempotent", Shape: ShapeEmpty, Expect: Expectation{NoResults: true}, Attempts: 2},
	}
}

// RunTestSuite runs every scenario against the server, one at a time and in order. A
// failing scenario never stops the ones after it.
func RunTestSuite(
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
	opts SuiteOptions,
) framework.Results {
	scenarios := opts.Scenarios
	if scenarios == nil {
		scenarios = AllScenarios()
	}
	client := NewSearchClient(harness, opts.SearchPath)

	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, client)
		for i, s := range scenarios {
			if i > 0 && opts.Pause > 0 {
				time.Sleep(opts.Pause)
			}
			t.Run(s.Name, s.run)
		}
	})
}

func (s Scenario) run(t *T) {
	req := BuildRequest(s.Shape)
	attempts := s.Attempts
	if attempts < 1 {
		attempts = 1
	}
	for i := 1; i <= attempts; i++ {
		resp := t.RequireSearch(req)
		if err := Validate(s.Expect, resp); err != nil {
			if attempts > 1 {
				t.Errorf("attempt %d of %d: %s", i, attempts, err)
			} else {
				t.Errorf("%s", err)
			}
			t.Debug("Response %s: %s", resp.RequestID, resp.Raw)
			t.FailNow()
		}
		var typed servicedef.SearchResponse
		if err := json.Unmarshal([]byte(resp.Raw), &typed); err == nil {
			t.Debug("Engine %q returned %d results (total %d) in %vms; round trip %s, content type %q",
				typed.Engine, len(typed.Results), typed.Total, typed.TookMS,
				resp.Elapsed.Round(time.Millisecond), resp.ContentType)
		}
	}
}

// Describe summarizes the scenario for a listing.
func (s Scenario) Describe() string {
	req := BuildRequest(s.Shape)
	d := fmt.Sprintf("%s: %s", s.Name, req)
	if s.Attempts > 1 {
		d += fmt.Sprintf(" (x%d)", s.Attempts)
	}
	return d
}
