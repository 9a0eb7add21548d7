package framework

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID   TestID
	Errors   []error
	Skipped  bool
	Duration time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run.
func PrintResults(results Results, out io.Writer) {
	var ran int
	for _, t := range results.Tests {
		if len(t.TestID.Path) > 0 && !t.Skipped {
			ran++
		}
	}
	if results.OK() {
		fmt.Fprintf(out, "All tests passed (%d run, %d skipped)\n", ran, len(results.Skipped))
		return
	}
	fmt.Fprintf(out, "FAILED TESTS (%d of %d run, %d skipped):\n", len(results.Failures), ran, len(results.Skipped))
	for _, f := range results.Failures {
		fmt.Fprintf(out, "* %s (%s)\n", f.TestID, f.Duration.Round(time.Millisecond))
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
		}
	}
}
