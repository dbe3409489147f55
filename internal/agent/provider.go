package agent

import "context"

// Reply is the provider's answer for one iteration. In well-formed
// responses exactly one of Text/Invocations is non-empty; the loop
// tolerates both being empty (an empty final answer) and prefers Text when
// a provider returns both.
type Reply struct {
	Text        string
	Invocations []Invocation
}

// Provider is the abstract contract a model backend must satisfy. A
// concrete provider translates the ledger, the tool menu and the
// instruction into its own wire format and back.
//
// Contract clauses:
//   - An empty tools slice means "do not request any tool calls this turn";
//     adapters must not surface invocations in that case.
//   - Invocations may carry a ContinuationToken; the adapter is responsible
//     for serializing it on the way out and reattaching provider metadata on
//     the way in. The loop only guarantees it is never discarded.
//   - Transport/server failures surface as *ProviderUnavailableError (with
//     at most one internal retry, only for a provider's known
//     malformed-function-call response class). Authentication/validation
//     failures surface as *ProviderRejectedError and are never retried.
type Provider interface {
	Name() string
	Generate(ctx context.Context, history []Message, tools []*Descriptor, instruction string) (*Reply, error)
}
