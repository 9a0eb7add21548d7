// Package markettests contains the contract tests for the market API and their supporting API.
//
// The tests run one at a time in declaration order, and later tests use identifiers that
// earlier ones captured from the service's responses, so their order is significant.
//
// Infrastructure that is not specific to the market API, such as sending requests and
// tracking test results, is in the lower-level framework package.
package markettests
