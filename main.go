package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mercado-qa/market-contract-tests/framework"
	"github.com/mercado-qa/market-contract-tests/markettests"
)

func main() {
	params, ok := readParams()
	if !ok {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	harness, err := framework.NewTestHarness(
		framework.HarnessConfig{
			BaseURL:             params.serviceURL,
			RequestTimeout:      params.requestTimeout,
			AwaitServiceTimeout: params.awaitServiceTimeout,
		},
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Test harness error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters, os.Stdout)

	fmt.Printf("Running test suite against %s (request timeout %s)\n", harness.BaseURL(), harness.RequestTimeout())

	testLogger := NewConsoleTestLogger(os.Stdout)
	testLogger.DebugOutputOnFailure = params.debug || params.debugAll
	testLogger.DebugOutputOnSuccess = params.debugAll

	results := markettests.RunTestSuite(harness, nil, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results, os.Stdout)
	if !results.OK() {
		os.Exit(1)
	}
}
