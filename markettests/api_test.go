package markettests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mercado-qa/market-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// runOne runs a single test action against a handler and returns its results.
func runOne(t *testing.T, handler http.Handler, action func(*T)) framework.Results {
	var results framework.Results
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		harness, err := framework.NewTestHarness(framework.HarnessConfig{BaseURL: server.URL, RequestTimeout: time.Second * 5}, nil, nil)
		require.NoError(t, err)
		env := &environment{harness: harness, state: NewRunState()}
		results = framework.Run(nil, nil, func(c *framework.Context) {
			(&T{context: c, env: env}).Run("test", action)
		})
	})
	return results
}

func firstError(results framework.Results) string {
	if len(results.Failures) == 0 || len(results.Failures[0].Errors) == 0 {
		return ""
	}
	return results.Failures[0].Errors[0].Error()
}

func jsonHandler(status int, body string) http.Handler {
	return httphelpers.HandlerWithResponse(status, http.Header{"Content-Type": {"application/json"}}, []byte(body))
}

func TestRequestSpecPassesWhenAllExpectationsHold(t *testing.T) {
	var captured int
	results := runOne(t, jsonHandler(201, `{"novoMercado":{"id":12}}`), func(t *T) {
		resp := t.Post(t.URL("/mercado")).
			WithJSON(map[string]string{"nome": "x"}).
			WithHeader("Accept", "application/json").
			ExpectStatus(201).
			ExpectHeaderContains("Content-Type", "json").
			ExpectJSONLike(ldvalue.Parse([]byte(`{"novoMercado":{}}`))).
			CaptureInt("novoMercado.id", &captured).
			Send()
		assert.Equal(t, 201, resp.StatusCode)
	})
	assert.True(t, results.OK(), firstError(results))
	assert.Equal(t, 12, captured)
}

func TestRequestSpecStopsAtFirstUnsatisfiedExpectation(t *testing.T) {
	captured := 7
	reachedEnd := false
	results := runOne(t, jsonHandler(500, `{"novoMercado":{"id":12}}`), func(t *T) {
		t.Post(t.URL("/mercado")).
			ExpectStatus(201).
			ExpectHeaderContains("Content-Type", "text/html").
			CaptureInt("novoMercado.id", &captured).
			Send()
		reachedEnd = true
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, firstError(results), "expected status 201 but got 500 Internal Server Error")
	assert.False(t, reachedEnd)
	assert.Equal(t, 7, captured)
}

func TestExpectHeaderContainsWithMissingHeader(t *testing.T) {
	results := runOne(t, httphelpers.HandlerWithStatus(200), func(t *T) {
		t.Get(t.URL("/mercado")).
			ExpectHeaderContains("X-Custom", "abc").
			Send()
	})
	assert.Contains(t, firstError(results), "expected header X-Custom to contain \"abc\" but it was not present")
}

func TestExpectJSONLikeWithNonJSONBody(t *testing.T) {
	results := runOne(t, httphelpers.HandlerWithResponse(200, nil, []byte("hello")), func(t *T) {
		t.Get(t.URL("/mercado")).
			ExpectJSONLike(ldvalue.ObjectBuild().Build()).
			Send()
	})
	assert.Contains(t, firstError(results), `expected a JSON body like {} but got "hello"`)
}

func TestExpectBodyWithPlainText(t *testing.T) {
	results := runOne(t, httphelpers.HandlerWithResponse(404, nil, []byte(marketNotFoundMessage)), func(t *T) {
		t.Put(t.URL("/mercado/10000")).
			ExpectStatus(404).
			ExpectBody(ldvalue.String(marketNotFoundMessage)).
			Send()
	})
	assert.True(t, results.OK(), firstError(results))
}

func TestCaptureIntRequiresNumber(t *testing.T) {
	captured := 3
	results := runOne(t, jsonHandler(201, `{"novaFruta":{"id":"abc"}}`), func(t *T) {
		t.Post(t.URL("/x")).CaptureInt("novaFruta.id", &captured).Send()
	})
	assert.Contains(t, firstError(results), `could not capture "novaFruta.id"`)
	assert.Equal(t, 3, captured)
}

func TestTransportErrorFailsTest(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	serverURL := server.URL
	server.Close()

	harness, err := framework.NewTestHarness(framework.HarnessConfig{BaseURL: serverURL, RequestTimeout: time.Second}, nil, nil)
	require.NoError(t, err)
	results := RunTestSuite(harness, nil, nil, nil)

	assert.Len(t, results.Failures, len(allTestIDs))
}
