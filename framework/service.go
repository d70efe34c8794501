package framework

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"
)

const probeRetryInterval = time.Millisecond * 100

// ServiceStatus is what the server returned from its root resource. Any status code
// counts as proof that the server is alive; the body is whatever metadata it chose to send.
type ServiceStatus struct {
	StatusCode int
	Body       []byte
}

// Response is a complete HTTP response from the server under test.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Elapsed    time.Duration
}

func queryServiceStatus(
	client *http.Client,
	url string,
	startupWait time.Duration,
	logger Logger,
	output io.Writer,
) (ServiceStatus, error) {
	fmt.Fprintf(output, "Connecting to search server at %s", url)

	deadline := time.Now().Add(startupWait)
	for {
		fmt.Fprintf(output, ".")
		status, err := getServiceStatus(client, url)
		if err == nil {
			fmt.Fprintln(output)
			logger.Printf("Status query returned %d: %s", status.StatusCode, string(status.Body))
			return status, nil
		}
		logger.Printf("Status query failed: %s", err)
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return ServiceStatus{}, err
		}
		time.Sleep(probeRetryInterval)
	}
}

func getServiceStatus(client *http.Client, url string) (ServiceStatus, error) {
	resp, err := client.Get(url)
	if err != nil {
		return ServiceStatus{}, classifyProbeError(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ServiceStatus{}, fmt.Errorf("%w: reading response: %s", ErrProbe, err)
	}
	return ServiceStatus{StatusCode: resp.StatusCode, Body: body}, nil
}

// PostJSON sends body, encoded with json.Marshal, as a POST to path. It makes exactly
// one attempt. A non-2xx status is not an error here; judging the response is up to the
// caller. Failures wrap ErrTimeout or ErrTransport.
func (h *TestHarness) PostJSON(path string, body interface{}, headers http.Header, logger Logger) (Response, error) {
	if logger == nil {
		logger = h.logger
	}
	data, err := json.Marshal(body)
	if err != nil {
		return Response{}, err
	}
	url := h.URL(path)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return Response{}, err
	}
	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Printf("POST %s %s", url, string(data))
	started := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return Response{}, classifyRequestError(err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, classifyRequestError(err)
	}
	elapsed := time.Since(started)
	logger.Printf("Response status %d after %s: %s", resp.StatusCode, elapsed, string(respBody))

	return Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Elapsed:    elapsed,
	}, nil
}

func classifyProbeError(err error) error {
	if !isTimeout(err) && isUnreachable(err) {
		return fmt.Errorf("%w: %s", ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %s", ErrProbe, err)
}

func classifyRequestError(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %s", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %s", ErrTransport, err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isUnreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
