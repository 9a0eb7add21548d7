package framework

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const requestIDHeader = "X-Request-Id"

// maxLoggedBodyLength limits how much of a response body goes into debug output.
const maxLoggedBodyLength = 2000

// Request describes a single HTTP request to the API under test.
type Request struct {
	Method string
	URL    string

	// JSON, if not nil, is encoded as the request body and the Content-Type is set to
	// application/json.
	JSON interface{}

	Headers http.Header
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Elapsed    time.Duration
	RequestID  string
}

// Status returns the status code along with its standard text, such as "404 Not Found".
func (r *Response) Status() string {
	return fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode))
}

// JSON parses the response body. The second return value is false if the body is not valid JSON.
func (r *Response) JSON() (ldvalue.Value, bool) {
	return ParseJSONBody(r.Body)
}

// Get extracts a value from a JSON response body using a gjson path such as "novoMercado.id".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// Do sends a request and reads the whole response. Errors are returned only for problems
// that prevented getting a response at all, including a timeout; any HTTP status is a
// successful result as far as Do is concerned.
func (h *TestHarness) Do(ctx context.Context, r Request, logger Logger) (*Response, error) {
	if logger == nil {
		logger = h.logger
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var body []byte
	if r.JSON != nil {
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body: %w", err)
		}
		body = data
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, bodyReader)
	if err != nil {
		return nil, err
	}
	for name, values := range r.Headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := req.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(requestIDHeader, requestID)
	}

	logger.Printf("Request: %s", curlCommand(req.Method, req.URL.String(), req.Header, body, h.client.Timeout))

	startTime := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		elapsed := time.Since(startTime)
		logger.Printf("Request %s failed after %s: %s", requestID, elapsed, err)
		return nil, fmt.Errorf("%s %s failed after %s: %w", r.Method, r.URL, elapsed.Round(time.Millisecond), err)
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	elapsed := time.Since(startTime)
	if err != nil {
		logger.Printf("Reading response body for %s failed after %s: %s", requestID, elapsed, err)
		return nil, fmt.Errorf("error reading response body of %s %s: %w", r.Method, r.URL, err)
	}

	ret := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Elapsed:    elapsed,
		RequestID:  requestID,
	}
	logger.Printf("Response: %s in %s, Content-Type %q, body: %s",
		ret.Status(), elapsed.Round(time.Millisecond), resp.Header.Get("Content-Type"), truncateForLog(respBody))
	return ret, nil
}

func truncateForLog(data []byte) string {
	if len(data) == 0 {
		return "<empty>"
	}
	if len(data) > maxLoggedBodyLength {
		return string(data[:maxLoggedBodyLength]) + "..."
	}
	return string(data)
}
