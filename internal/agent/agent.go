package agent

import (
	"context"

	"github.com/codefionn/wayfinder/internal/logger"
)

// TurnResult is what one call to HandleTurn hands back to the caller: the
// final answer plus every invocation and outcome the turn produced.
type TurnResult struct {
	FinalText   string
	Invocations []Invocation
	Outcomes    []Outcome
}

// Agent drives one conversation session. It owns the session's History and
// the per-turn loop state; the registry and provider are injected and may
// be shared across sessions.
//
// A session is single-threaded-cooperative: callers must not invoke
// HandleTurn concurrently on the same Agent. Distinct Agents run fully
// concurrently; the only shared state is the read-only Registry.
type Agent struct {
	provider    Provider
	registry    *Registry
	executor    *Executor
	history     *History
	instruction string
	ceiling     int
	log         *logger.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithCeiling overrides the default iteration ceiling.
func WithCeiling(ceiling int) Option {
	return func(a *Agent) {
		if ceiling > 0 {
			a.ceiling = ceiling
		}
	}
}

// WithInstruction sets the base behavioral instruction sent to the
// provider on every iteration.
func WithInstruction(instruction string) Option {
	return func(a *Agent) { a.instruction = instruction }
}

// WithLogger sets the logger used by the loop and executor.
func WithLogger(log *logger.Logger) Option {
	return func(a *Agent) { a.log = log }
}

// New creates a session agent over the given provider and tool registry.
func New(provider Provider, registry *Registry, opts ...Option) *Agent {
	a := &Agent{
		provider: provider,
		registry: registry,
		history:  NewHistory(),
		ceiling:  DefaultCeiling,
		log:      logger.Global(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.executor = NewExecutor(registry, a.log)
	return a
}

// HandleTurn runs one full turn: it appends the user input to the ledger,
// then alternates provider calls and tool execution until the model
// concludes with text or the iteration ceiling forces a fallback answer.
//
// Provider-level failures propagate out unchanged; in that case the ledger
// retains the UserInput append (and any completed tool-call pairs) but
// nothing from the failed generate call. Tool-level failures never
// propagate; they are folded into Outcomes.
func (a *Agent) HandleTurn(ctx context.Context, userText string) (*TurnResult, error) {
	a.history.Append(UserInput{Text: userText})

	var (
		invocations []Invocation
		outcomes    []Outcome
	)

	for iteration := 1; ; iteration++ {
		decision := Decide(iteration, a.ceiling)

		tools := []*Descriptor{}
		if decision.OfferTools {
			tools = a.registry.List()
		}

		instruction := a.instruction
		if decision.Guidance != "" {
			if instruction != "" {
				instruction += "\n\n"
			}
			instruction += decision.Guidance
		}

		a.log.Debug("turn iteration %d/%d: offering %d tools", iteration, a.ceiling, len(tools))

		reply, err := a.provider.Generate(ctx, a.history.Messages(), tools, instruction)
		if err != nil {
			return nil, err
		}

		if reply == nil {
			reply = &Reply{}
		}

		// Concluded: the provider returned text, or nothing at all. Text
		// wins over invocations if a provider nonsensically returns both.
		if reply.Text != "" || len(reply.Invocations) == 0 {
			if reply.Text != "" {
				a.history.Append(AssistantResponse{Text: reply.Text})
				return &TurnResult{FinalText: reply.Text, Invocations: invocations, Outcomes: outcomes}, nil
			}
			if iteration >= a.ceiling {
				// The forced final call produced no answer: fall back.
				return a.exhausted(invocations, outcomes)
			}
			return &TurnResult{Invocations: invocations, Outcomes: outcomes}, nil
		}

		// Executing: run the batch strictly in order. Later calls in a
		// batch may depend on venue context established by earlier ones.
		results := make([]Outcome, 0, len(reply.Invocations))
		for _, inv := range reply.Invocations {
			results = append(results, a.executor.Execute(ctx, inv))
		}

		a.history.Append(ToolCalls{Invocations: reply.Invocations})
		a.history.Append(ToolResults{Results: results})

		invocations = append(invocations, reply.Invocations...)
		outcomes = append(outcomes, results...)

		if iteration >= a.ceiling {
			return a.exhausted(invocations, outcomes)
		}
	}
}

// exhausted synthesizes the deterministic fallback answer, records it in
// the ledger and ends the turn.
func (a *Agent) exhausted(invocations []Invocation, outcomes []Outcome) (*TurnResult, error) {
	a.log.Info("iteration ceiling reached after %d tool calls; synthesizing fallback", len(outcomes))
	text := exhaustionMessage(outcomes)
	a.history.Append(AssistantResponse{Text: text})
	return &TurnResult{FinalText: text, Invocations: invocations, Outcomes: outcomes}, nil
}

// History returns a defensive copy of the session ledger.
func (a *Agent) History() []Message {
	return a.history.Messages()
}

// ResetHistory discards the session ledger.
func (a *Agent) ResetHistory() {
	a.history.Reset()
}
