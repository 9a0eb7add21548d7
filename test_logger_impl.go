package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mercado-qa/market-contract-tests/framework"

	"github.com/fatih/color"
)

// ConsoleTestLogger reports the progress of the test run as it happens.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	out     io.Writer
	failed  func(a ...interface{}) string
	skipped func(a ...interface{}) string
	passed  func(a ...interface{}) string
}

func NewConsoleTestLogger(out io.Writer) *ConsoleTestLogger {
	return &ConsoleTestLogger{
		out:     out,
		failed:  color.New(color.FgRed, color.Bold).SprintFunc(),
		skipped: color.New(color.FgYellow).SprintFunc(),
		passed:  color.New(color.FgGreen).SprintFunc(),
	}
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.out, "  %s %s\n", c.failed("FAILED:"), id)
	} else if len(id.Path) > 1 {
		fmt.Fprintf(c.out, "  %s\n", c.passed("ok"))
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.out, "  %s %s\n", c.skipped("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.out, "  %s %s (%s)\n", c.skipped("SKIPPED:"), id, reason)
	}
}
