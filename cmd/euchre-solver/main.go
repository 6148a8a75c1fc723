// Command euchre-solver drives the CFR family, the open-hand
// alpha-beta/MTD(f) solver, and PIMCTS over Euchre and Kuhn Poker from
// the command line: train a policy, evaluate an agent against a
// baseline, estimate a game tree's size, and report a trained policy's
// exploitability.
package main

import (
	"errors"
	"fmt"
	"os"
)

// runtimeErr marks an error as a runtime failure (I/O, training,
// solving) rather than a usage error, so main can tell the two apart
// without cobra's own argument-parsing errors needing any annotation.
// Per SPEC_FULL.md §4.8: exit 0 success, 2 argument/parse errors
// (cobra's own convention, left alone), 1 runtime errors.
type runtimeErr struct{ cause error }

func (e *runtimeErr) Error() string { return e.cause.Error() }
func (e *runtimeErr) Unwrap() error { return e.cause }

func wrapRuntime(err error) error {
	if err == nil {
		return nil
	}
	return &runtimeErr{cause: err}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var rt *runtimeErr
		if errors.As(err, &rt) {
			fmt.Fprintln(os.Stderr, "Error:", rt.cause)
			os.Exit(1)
		}
		// cobra has already printed usage and the parse error itself.
		os.Exit(2)
	}
}
