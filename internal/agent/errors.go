package agent

import "fmt"

// ProviderUnavailableError indicates a transient transport or server-side
// failure from a model provider. HandleTurn propagates it to the caller,
// who may retry the turn.
type ProviderUnavailableError struct {
	Provider string
	Err      error
}

func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Err)
}

func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// ProviderRejectedError indicates an authentication or validation failure
// from a model provider. It is never retried.
type ProviderRejectedError struct {
	Provider string
	Err      error
}

func (e *ProviderRejectedError) Error() string {
	return fmt.Sprintf("provider %s rejected request: %v", e.Provider, e.Err)
}

func (e *ProviderRejectedError) Unwrap() error { return e.Err }

// DuplicateToolError is returned by Registry.Register when a tool name is
// already taken. Registration happens at setup time, so this surfaces
// immediately as a programmer error rather than at turn time.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q already registered", e.Name)
}

// NotFoundError is returned by Registry.Resolve for an unknown tool name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool %q not registered", e.Name)
}
