package searchtests

import (
	"github.com/localkb/search-contract-tests/framework"
	"github.com/localkb/search-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
)

// T represents a scenario or group of scenarios in the search test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment
// outside of the Go test runner, with debug logging provided by the lower-level framework
// package. It also knows how to send search requests to the server under test.
//
// To make test assertions, use the assert and require packages, passing the *T as if it
// were a *testing.T.
type T struct {
	context *framework.Context
	client  *SearchClient
}

func newTestScope(context *framework.Context, client *SearchClient) *T {
	return &T{context: context, client: client}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The
// methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.client))
	})
}

func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// RequireSearch sends a search request and returns the response, whatever its status
// code. If the request could not be completed at all, the test fails and exits.
func (t *T) RequireSearch(req servicedef.SearchRequest) SearchResponse {
	resp, err := t.client.Search(req, t.context.DebugLogger())
	require.NoError(t, err, "search request %s in %q failed", resp.RequestID, t.context.ID())
	return resp
}
