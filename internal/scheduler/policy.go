package scheduler

import "fmt"

// Policy controls how a run reacts when a task fails.
type Policy int

const (
	// Abort ends the run on the first failure, returning that error
	// verbatim. Tasks already in flight keep running but their outcomes
	// are discarded.
	Abort Policy = iota

	// Drain stops launching new tasks after the first failure, lets
	// in-flight tasks finish, and returns every collected failure as an
	// *AggregateError.
	Drain

	// Continue runs every task to resolution regardless of failures and
	// returns the collected failures as an *AggregateError.
	Continue
)

// String returns the policy's configuration name.
func (p Policy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Drain:
		return "drain"
	case Continue:
		return "continue"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy converts a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "abort":
		return Abort, nil
	case "drain":
		return Drain, nil
	case "continue":
		return Continue, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected abort, drain or continue)", ErrUnknownPolicy, s)
	}
}
