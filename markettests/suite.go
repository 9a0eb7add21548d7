package markettests

import (
	"github.com/mercado-qa/market-contract-tests/framework"
)

// RunTestSuite runs every market API test in order against the service that the harness
// points to. If state is nil, a new RunState is used.
func RunTestSuite(
	harness *framework.TestHarness,
	state *RunState,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if state == nil {
		state = NewRunState()
	}
	env := &environment{harness: harness, state: state}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.Run("markets", DoMarketTests)
		t.Run("products", DoProductTests)
	})
}
