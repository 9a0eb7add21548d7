package framework

// TestLogger receives progress notifications for every test in a run. It is how results get
// reported as the run proceeds; Run also returns them all at the end.
type TestLogger interface {
	// TestStarted is called before a test runs, or before it is skipped by the filter.
	TestStarted(id TestID)

	// TestError is called for each failure reported by a test, at the time it is reported.
	TestError(id TestID, err error)

	// TestFinished is called after a test that was not skipped, with the debug output it captured.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)

	// TestSkipped is called instead of TestFinished for a skipped test.
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}
