package agent

import (
	"fmt"
	"strings"
)

// exhaustionMessage synthesizes the graceful fallback answer for a turn
// that reached the iteration ceiling without the model producing final
// text. The classification over accumulated outcomes is deterministic and
// user-visible, so the branch rule here is fixed behavior, not styling.
func exhaustionMessage(outcomes []Outcome) string {
	var succeeded, failed int
	for _, o := range outcomes {
		switch {
		case o.Failed():
			failed++
		case o.Succeeded():
			succeeded++
		}
	}

	switch {
	case failed > 0:
		return "Sorry, I hit a limit while working on that and some of my lookups failed. " +
			"Could you help me try again? What kind of place are you looking for, " +
			"roughly where in the venue are you, and is there another way to phrase the name?"
	case succeeded > 0:
		return fmt.Sprintf(
			"I explored the venue using %s but ran out of steps before settling on an answer. "+
				"Which of the places I looked at interests you, or would you like more detail or directions to one of them?",
			joinToolNames(outcomes))
	default:
		return "I wasn't able to make progress on that. " +
			"What category of place are you looking for, where in the venue are you right now, " +
			"and could you phrase the name another way?"
	}
}

// joinToolNames lists the distinct tools that ran, in first-use order.
func joinToolNames(outcomes []Outcome) string {
	seen := make(map[string]bool, len(outcomes))
	names := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Name == "" || seen[o.Name] {
			continue
		}
		seen[o.Name] = true
		names = append(names, o.Name)
	}

	switch len(names) {
	case 0:
		return "my tools"
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
