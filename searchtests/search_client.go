package searchtests

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/localkb/search-contract-tests/framework"
	"github.com/localkb/search-contract-tests/servicedef"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const requestIDHeader = "X-Request-Id"

// SearchResponse is the raw answer to one search request, before any validation.
type SearchResponse struct {
	StatusCode int

	// Body is the parsed JSON body. It is ldvalue.Null() if the body was not valid JSON;
	// check IsJSON to tell that apart from a literal null.
	Body ldvalue.Value

	// Raw is the body text exactly as received.
	Raw string

	IsJSON      bool
	ContentType string
	RequestID   string
	Elapsed     time.Duration
}

// SearchClient sends search requests to the server under test.
type SearchClient struct {
	harness *framework.TestHarness
	path    string
}

func NewSearchClient(harness *framework.TestHarness, path string) *SearchClient {
	if path == "" {
		path = servicedef.SearchPath
	}
	return &SearchClient{harness: harness, path: path}
}

// Search posts req to the search endpoint once, with no retries. Any HTTP status is
// returned as a response; only network failures are errors, and those wrap
// framework.ErrTimeout or framework.ErrTransport.
func (c *SearchClient) Search(req servicedef.SearchRequest, logger framework.Logger) (SearchResponse, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	requestID := uuid.NewString()
	headers := make(http.Header)
	headers.Set(requestIDHeader, requestID)
	logger.Printf("Request %s; to repeat it: %s", requestID, c.curlCommand(req, requestID))

	resp, err := c.harness.PostJSON(c.path, req, headers, logger)
	if err != nil {
		return SearchResponse{RequestID: requestID}, err
	}
	ret := SearchResponse{
		StatusCode:  resp.StatusCode,
		Raw:         string(resp.Body),
		IsJSON:      json.Valid(resp.Body),
		ContentType: resp.Header.Get("Content-Type"),
		RequestID:   requestID,
		Elapsed:     resp.Elapsed,
	}
	if ret.IsJSON {
		ret.Body = ldvalue.Parse(resp.Body)
	}
	return ret, nil
}

func (c *SearchClient) curlCommand(req servicedef.SearchRequest, requestID string) string {
	var cmd framework.CommandBuilder
	cmd.Add("curl", "-sS", "-X", http.MethodPost,
		"-H", "Content-Type: application/json",
		"-H", requestIDHeader+": "+requestID,
		"-d", req.String(),
		c.harness.URL(c.path))
	return cmd.String()
}
