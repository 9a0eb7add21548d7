package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mercado-qa/market-contract-tests/framework"

	"github.com/joho/godotenv"
)

const (
	defaultServiceURL = "https://api-desafio-qa.onrender.com"

	serviceURLEnvVar     = "MARKET_API_URL"
	requestTimeoutEnvVar = "MARKET_API_TIMEOUT"
)

type commandParams struct {
	serviceURL          string
	requestTimeout      time.Duration
	awaitServiceTimeout time.Duration
	filters             framework.RegexFilters
	debug               bool
	debugAll            bool
}

// loadDotEnv populates the environment from a .env file in the working directory, if there
// is one. Variables that are already set are not overridden.
func loadDotEnv() {
	_ = godotenv.Load()
}

func (c *commandParams) Read(args []string, getenv func(string) string, errOut io.Writer) bool {
	defaultURL := defaultServiceURL
	if v := getenv(serviceURLEnvVar); v != "" {
		defaultURL = v
	}
	defaultTimeout := framework.DefaultRequestTimeout
	if v := getenv(requestTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			fmt.Fprintf(errOut, "invalid %s: %s\n", requestTimeoutEnvVar, err)
			return false
		}
		defaultTimeout = d
	}

	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.serviceURL, "url", defaultURL, "base URL of the market API (or "+serviceURLEnvVar+")")
	fs.DurationVar(&c.requestTimeout, "timeout", defaultTimeout, "timeout for each request (or "+requestTimeoutEnvVar+")")
	fs.DurationVar(&c.awaitServiceTimeout, "await-service", 0, "wait up to this long for the service to respond before running tests")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	if c.requestTimeout <= 0 {
		fmt.Fprintln(errOut, "-timeout must be greater than zero")
		return false
	}
	return true
}

func readParams() (commandParams, bool) {
	loadDotEnv()
	var params commandParams
	ok := params.Read(os.Args, os.Getenv, os.Stderr)
	return params, ok
}
