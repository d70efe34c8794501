package framework

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultProbeTimeout   = time.Second * 2
	DefaultRequestTimeout = time.Second * 5
)

// HarnessConfig describes the server under test and how long to wait for it.
type HarnessConfig struct {
	// BaseURL is the server's root, such as http://localhost:7777. A trailing slash is ignored.
	BaseURL string

	// ProbeTimeout bounds the initial status query. Zero means DefaultProbeTimeout.
	ProbeTimeout time.Duration

	// RequestTimeout bounds every request made after the status query. Zero means
	// DefaultRequestTimeout.
	RequestTimeout time.Duration

	// StartupWait, if positive, keeps retrying the status query for that long before
	// giving up, for servers that are still starting. Zero means a single attempt.
	StartupWait time.Duration
}

// TestHarness is the connection to the server under test.
type TestHarness struct {
	baseURL    string
	status     ServiceStatus
	probe      *http.Client
	httpClient *http.Client
	logger     Logger
}

// NewTestHarness creates a TestHarness and verifies that the server is responding by
// querying its root resource. It fails with an error wrapping ErrUnreachable if nothing
// is listening at the base URL, or ErrProbe for any other failure of the status query.
func NewTestHarness(
	config HarnessConfig,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if startupOutput == nil {
		startupOutput = io.Discard
	}
	baseURL, err := normalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}
	if config.ProbeTimeout <= 0 {
		config.ProbeTimeout = DefaultProbeTimeout
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}

	h := &TestHarness{
		baseURL:    baseURL,
		probe:      &http.Client{Timeout: config.ProbeTimeout},
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		logger:     debugLogger,
	}

	status, err := queryServiceStatus(h.probe, baseURL+"/", config.StartupWait, debugLogger, startupOutput)
	if err != nil {
		return nil, err
	}
	h.status = status
	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("server URL must be an absolute http or https URL, got %q", raw)
	}
	if strings.ContainsAny(raw, "?#") {
		return "", fmt.Errorf("server URL cannot have a query or fragment, got %q", raw)
	}
	return strings.TrimSuffix(raw, "/"), nil
}

func (h *TestHarness) BaseURL() string {
	return h.baseURL
}

// ServiceStatus returns what the server sent back from the initial status query.
func (h *TestHarness) ServiceStatus() ServiceStatus {
	return h.status
}

// URL returns the absolute URL of a path on the server.
func (h *TestHarness) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return h.baseURL + path
}

var (
	// ErrUnreachable means nothing accepted a connection at the server's address.
	ErrUnreachable = errors.New("server is unreachable")

	// ErrProbe means the server's address accepted a connection but the status query
	// still failed, for instance by timing out.
	ErrProbe = errors.New("status query failed")

	// ErrTimeout means a request was not answered within the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrTransport covers every other network-level failure of a request.
	ErrTransport = errors.New("transport error")
)
