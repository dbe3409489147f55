package agent

import "fmt"

// DefaultCeiling is the default iteration bound for a turn.
const DefaultCeiling = 10

// Decision is the iteration policy's verdict for one iteration: whether
// tools are offered to the provider, and what supplementary guidance is
// appended to the behavioral instruction.
type Decision struct {
	OfferTools bool
	Guidance   string
}

// Decide maps the current 1-indexed iteration and the configured ceiling to
// a Decision. The pressure is asymmetric: a soft warning one iteration
// before the ceiling, then hard tool withdrawal at the ceiling. Withdrawing
// tools is the mechanism that guarantees termination, because an adapter
// given no tools cannot return invocations.
func Decide(iteration, ceiling int) Decision {
	switch {
	case iteration < ceiling-1:
		return Decision{OfferTools: true}
	case iteration < ceiling:
		remaining := ceiling - iteration
		noun := "iterations"
		if remaining == 1 {
			noun = "iteration"
		}
		return Decision{
			OfferTools: true,
			Guidance: fmt.Sprintf(
				"You have %d %s remaining before you must answer. Prioritize concluding: only call a tool if it is essential, and prefer giving your final answer now.",
				remaining, noun),
		}
	default:
		return Decision{
			OfferTools: false,
			Guidance:   "No iterations remain. You must give your final answer now, based on the information you already have.",
		}
	}
}
