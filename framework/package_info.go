// Package framework contains the low-level implementation of the contract test runner
// that is not specific to the market API.
//
// The general model is:
//
// 1. The test harness owns the base URL of the API under test and an HTTP client with a
// fixed per-request timeout. Tests send requests through it and get back a fully read
// Response.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Tests run one at a time, in the order they are declared.
//
// 3. Response bodies can be checked with loose (JSON-like) or exact matching, and values
// can be extracted from them by path.
//
// The domain-specific code that knows what is being tested is responsible for building the
// requests, declaring the expectations, and carrying any state from one test to the next.
package framework
