package searchtests

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/localkb/search-contract-tests/framework"
	"github.com/localkb/search-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/require"
)

var stubCorpus = []servicedef.SearchResult{
	{Link: "https://example.com/msx", Title: "MSX computer", Snippet: "The MSX is a home computer standard."},
	{Link: "https://example.com/x68000", Title: "X68000", Snippet: "Sharp computer released in 1987."},
	{Link: "https://example.com/pc88", Title: "PC-8801", Snippet: "A retro computer from NEC."},
	{Link: "https://example.com/fm7", Title: "FM-7", Snippet: "A vintage machine from Fujitsu."},
	{Link: "https://example.com/test", Title: "Test pattern", Snippet: ""},
}

// stubSearchServer follows the search contract: it decodes every request shape the
// way a conforming server must, and records what it ended up searching for.
type stubSearchServer struct {
	searched [][]string
	lock     sync.Mutex
}

func (s *stubSearchServer) handler() http.Handler {
	search := httphelpers.HandlerForMethod("POST", http.HandlerFunc(s.serveSearch), httphelpers.HandlerWithStatus(405))
	root := httphelpers.HandlerWithResponse(200, nil,
		[]byte(`{"status": "running", "service": "stub", "version": "1.0"}`))
	return httphelpers.HandlerForPath(servicedef.SearchPath, search, root)
}

func (s *stubSearchServer) serveSearch(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var req servicedef.SearchRequest
	if err := json.Unmarshal(data, &req); err != nil {
		w.WriteHeader(400)
		return
	}
	queries := normalizeQueries(req)
	s.lock.Lock()
	s.searched = append(s.searched, queries)
	s.lock.Unlock()

	resp := servicedef.SearchResponse{Results: []servicedef.SearchResult{}, TookMS: 1, Engine: "stub"}
	for _, doc := range stubCorpus {
		if matchesAny(doc, queries) {
			resp.Total++
			if req.Count <= 0 || len(resp.Results) < req.Count {
				resp.Results = append(resp.Results, doc)
			}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *stubSearchServer) searches() [][]string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([][]string(nil), s.searched...)
}

func normalizeQueries(req servicedef.SearchRequest) []string {
	if len(req.Queries) > 0 {
		return req.Queries
	}
	q := strings.TrimSpace(req.Query.StringValue())
	if q == "" {
		return nil
	}
	if strings.HasPrefix(q, "{") {
		var embedded servicedef.SearchRequest
		if err := json.Unmarshal([]byte(q), &embedded); err == nil && len(embedded.Queries) > 0 {
			return embedded.Queries
		}
	}
	return []string{q}
}

func matchesAny(doc servicedef.SearchResult, queries []string) bool {
	text := strings.ToLower(doc.Title + " " + doc.Snippet)
	for _, q := range queries {
		for _, word := range strings.Fields(strings.ToLower(q)) {
			if strings.Contains(text, word) {
				return true
			}
		}
	}
	return false
}

// withServer starts handler, connects a harness to it and passes the harness to action.
func withServer(t *testing.T, handler http.Handler, action func(*framework.TestHarness)) {
	withServerConfig(t, handler, framework.HarnessConfig{}, action)
}

func withServerConfig(t *testing.T, handler http.Handler, config framework.HarnessConfig, action func(*framework.TestHarness)) {
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		config.BaseURL = server.URL
		h, err := framework.NewTestHarness(config, nil, nil)
		require.NoError(t, err)
		action(h)
	})
}

// searchHandler answers POST /search with a fixed response and GET / with 200.
func searchHandler(status int, body string) http.Handler {
	search := httphelpers.HandlerWithResponse(status, http.Header{"Content-Type": {"application/json"}}, []byte(body))
	return httphelpers.HandlerForPath(servicedef.SearchPath, search, httphelpers.HandlerWithStatus(200))
}
