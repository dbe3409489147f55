package agent

import (
	"strings"
	"testing"
)

func TestDecide(t *testing.T) {
	t.Run("Early iterations offer tools without guidance", func(t *testing.T) {
		for _, iteration := range []int{1, 2, 8} {
			d := Decide(iteration, 10)
			if !d.OfferTools {
				t.Errorf("iteration %d: expected tools offered", iteration)
			}
			if d.Guidance != "" {
				t.Errorf("iteration %d: expected no guidance, got %q", iteration, d.Guidance)
			}
		}
	})

	t.Run("Penultimate iteration warns with remaining count", func(t *testing.T) {
		d := Decide(9, 10)
		if !d.OfferTools {
			t.Error("expected tools still offered")
		}
		if !strings.Contains(d.Guidance, "1 iteration remaining") {
			t.Errorf("expected singular remaining-count warning, got %q", d.Guidance)
		}
	})

	t.Run("Ceiling withdraws tools and demands an answer", func(t *testing.T) {
		d := Decide(10, 10)
		if d.OfferTools {
			t.Error("expected tools withdrawn at ceiling")
		}
		if !strings.Contains(d.Guidance, "final answer now") {
			t.Errorf("expected final-answer demand, got %q", d.Guidance)
		}
	})

	t.Run("Beyond the ceiling stays withdrawn", func(t *testing.T) {
		d := Decide(11, 10)
		if d.OfferTools {
			t.Error("expected tools withdrawn past ceiling")
		}
	})

	t.Run("Ceiling of one withdraws immediately", func(t *testing.T) {
		d := Decide(1, 1)
		if d.OfferTools {
			t.Error("expected no tools on the only iteration")
		}
	})

	t.Run("Ceiling of two warns on the first iteration", func(t *testing.T) {
		d := Decide(1, 2)
		if !d.OfferTools {
			t.Error("expected tools offered")
		}
		if !strings.Contains(d.Guidance, "1 iteration remaining") {
			t.Errorf("expected warning, got %q", d.Guidance)
		}
	})
}
