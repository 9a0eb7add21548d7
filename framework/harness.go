package framework

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds each individual request. The service under test may be
// hosted somewhere that spins it down when idle, so the first request of a run can take a
// long time.
const DefaultRequestTimeout = time.Second * 100

const serviceProbeInterval = time.Millisecond * 500

// HarnessConfig contains the parameters for NewTestHarness.
type HarnessConfig struct {
	// BaseURL is the scheme and host of the API under test, such as "https://example.com".
	BaseURL string

	// RequestTimeout is the maximum time for any single request, including reading the
	// response body. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration

	// AwaitServiceTimeout, if greater than zero, makes NewTestHarness poll the base URL until
	// the service returns any HTTP response, giving up after this long.
	AwaitServiceTimeout time.Duration
}

// TestHarness is the connection between the tests and the API under test.
type TestHarness struct {
	baseURL string
	client  *http.Client
	logger  Logger
}

// NewTestHarness creates a TestHarness for the API at config.BaseURL. If config.AwaitServiceTimeout
// is set, it also verifies that the service is responding, writing progress to startupOutput.
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
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	h := &TestHarness{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  debugLogger,
	}

	if config.AwaitServiceTimeout > 0 {
		if err := h.awaitService(config.AwaitServiceTimeout, startupOutput); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func normalizeBaseURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("base URL is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", rawURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("invalid base URL %q: must not have a query or fragment", rawURL)
	}
	return strings.TrimRight(rawURL, "/"), nil
}

// BaseURL returns the base URL of the API under test, without a trailing slash.
func (h *TestHarness) BaseURL() string {
	return h.baseURL
}

// RequestTimeout returns the per-request timeout.
func (h *TestHarness) RequestTimeout() time.Duration {
	return h.client.Timeout
}

// URL returns the absolute URL for a path, which is formatted with fmt.Sprintf.
func (h *TestHarness) URL(pathFormat string, args ...interface{}) string {
	path := fmt.Sprintf(pathFormat, args...)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return h.baseURL + path
}

func (h *TestHarness) awaitService(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", h.baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		fmt.Fprintf(output, ".")
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL, nil)
		resp, err := h.client.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			fmt.Fprintln(output)
			h.logger.Printf("Service responded with status %d", resp.StatusCode)
			return nil
		}
		h.logger.Printf("Service not responding yet: %s", err)
		select {
		case <-ctx.Done():
			fmt.Fprintln(output)
			return fmt.Errorf("timed out waiting for service at %s, result of last query was: %w", h.baseURL, err)
		case <-time.After(serviceProbeInterval):
		}
	}
}
