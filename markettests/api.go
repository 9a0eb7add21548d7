package markettests

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mercado-qa/market-contract-tests/framework"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// defaultCapturedID is the value of every captured identifier before any test has captured it.
const defaultCapturedID = 1

// RunState holds the identifiers that tests capture from responses for use by later tests.
//
// If a test fails before capturing an identifier, the field keeps whatever value it had, and
// the tests that depend on it still run using that value.
type RunState struct {
	MarketID int
	FruitID  int
	CattleID int
}

// NewRunState returns a RunState with every identifier set to its initial value.
func NewRunState() *RunState {
	return &RunState{
		MarketID: defaultCapturedID,
		FruitID:  defaultCapturedID,
		CattleID: defaultCapturedID,
	}
}

type environment struct {
	harness *framework.TestHarness
	state   *RunState
}

// T represents a test or subtest in the market API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, with debug logging provided by the framework package. To make
// test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T.
//
// Requests are built with Get, Post, Put or Delete, which return a RequestSpec for declaring
// what the response must look like.
type T struct {
	context *framework.Context
	env     *environment
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(&T{context: c, env: t.env})
	})
}

// Debug logs some debug output for the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// State returns the identifiers captured so far in this run.
func (t *T) State() *RunState {
	return t.env.state
}

// URL returns the absolute URL of a path on the API under test.
func (t *T) URL(pathFormat string, args ...interface{}) string {
	return t.env.harness.URL(pathFormat, args...)
}

func (t *T) Get(url string) *RequestSpec    { return t.newRequest(http.MethodGet, url) }
func (t *T) Post(url string) *RequestSpec   { return t.newRequest(http.MethodPost, url) }
func (t *T) Put(url string) *RequestSpec    { return t.newRequest(http.MethodPut, url) }
func (t *T) Delete(url string) *RequestSpec { return t.newRequest(http.MethodDelete, url) }

func (t *T) newRequest(method, url string) *RequestSpec {
	return &RequestSpec{
		t:       t,
		request: framework.Request{Method: method, URL: url, Headers: make(http.Header)},
	}
}

// RequestSpec is a request to send, together with the expectations for its response.
// Expectations are checked in the order they were added, after the response has been read.
type RequestSpec struct {
	t            *T
	request      framework.Request
	expectations []expectation
	captures     []capture
}

type expectation struct {
	description string
	check       func(*framework.Response) error
}

type capture struct {
	path string
	dest *int
}

// WithJSON sets the request body. The value is encoded as JSON.
func (s *RequestSpec) WithJSON(body interface{}) *RequestSpec {
	s.request.JSON = body
	return s
}

// WithHeader adds a request header.
func (s *RequestSpec) WithHeader(name, value string) *RequestSpec {
	s.request.Headers.Add(name, value)
	return s
}

// ExpectStatus requires the response to have exactly this status code.
func (s *RequestSpec) ExpectStatus(status int) *RequestSpec {
	return s.expect(fmt.Sprintf("status %d", status), func(r *framework.Response) error {
		if r.StatusCode != status {
			return fmt.Errorf("expected status %d but got %s", status, r.Status())
		}
		return nil
	})
}

// ExpectHeaderContains requires a response header to contain a substring.
func (s *RequestSpec) ExpectHeaderContains(name, substring string) *RequestSpec {
	return s.expect(fmt.Sprintf("header %s contains %q", name, substring), func(r *framework.Response) error {
		values := r.Header.Values(name)
		for _, v := range values {
			if strings.Contains(v, substring) {
				return nil
			}
		}
		if len(values) == 0 {
			return fmt.Errorf("expected header %s to contain %q but it was not present", name, substring)
		}
		return fmt.Errorf("expected header %s to contain %q but got %q", name, substring, strings.Join(values, ", "))
	})
}

// ExpectJSONLike requires the response body to be JSON that contains everything in expected,
// as defined by framework.MatchJSONLike.
func (s *RequestSpec) ExpectJSONLike(expected ldvalue.Value) *RequestSpec {
	return s.expect("body like "+expected.JSONString(), func(r *framework.Response) error {
		actual, ok := r.JSON()
		if !ok {
			return fmt.Errorf("expected a JSON body like %s but got %q", expected.JSONString(), string(r.Body))
		}
		return framework.MatchJSONLike(expected, actual)
	})
}

// ExpectBody requires the response body to be exactly equal to expected, as defined by
// framework.MatchBody.
func (s *RequestSpec) ExpectBody(expected ldvalue.Value) *RequestSpec {
	return s.expect("body "+expected.JSONString(), func(r *framework.Response) error {
		return framework.MatchBody(expected, r.Body)
	})
}

// CaptureInt stores the integer at a gjson path of the response body into dest, once all
// expectations have passed. If the value is not there, the test fails and dest is unchanged.
func (s *RequestSpec) CaptureInt(path string, dest *int) *RequestSpec {
	s.captures = append(s.captures, capture{path: path, dest: dest})
	return s
}

func (s *RequestSpec) expect(description string, check func(*framework.Response) error) *RequestSpec {
	s.expectations = append(s.expectations, expectation{description: description, check: check})
	return s
}

// Send sends the request once, checks the expectations, and performs the captures. The test
// fails and immediately exits on a transport error or on the first unsatisfied expectation.
func (s *RequestSpec) Send() *framework.Response {
	t := s.t
	resp, err := t.env.harness.Do(context.Background(), s.request, t.context.DebugLogger())
	require.NoError(t, err)

	for _, e := range s.expectations {
		if err := e.check(resp); err != nil {
			require.Fail(t, fmt.Sprintf("%s %s: %s", s.request.Method, s.request.URL, err),
				"expected %s; response was %s: %s", e.description, resp.Status(), string(resp.Body))
		}
	}

	for _, c := range s.captures {
		value := resp.Get(c.path)
		if !value.Exists() || value.Type != gjson.Number {
			require.Fail(t, fmt.Sprintf("%s %s: could not capture %q", s.request.Method, s.request.URL, c.path),
				"expected a number at %q in response body: %s", c.path, string(resp.Body))
		}
		*c.dest = int(value.Int())
		t.Debug("Captured %s = %d", c.path, *c.dest)
	}

	return resp
}
