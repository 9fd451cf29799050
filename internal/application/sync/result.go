package sync

// ResultError describes a failed webhook action
type ResultError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Result is the outcome of handling one webhook event. Webhook handlers
// always acknowledge receipt; Result carries what happened so the HTTP
// layer can report it without re-deliveries from the source store.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Entity  any          `json:"entity,omitempty"`
	Err     *ResultError `json:"error,omitempty"`
}

// Succeeded builds a successful result carrying the affected entity
func Succeeded(message string, entity any) Result {
	return Result{Success: true, Message: message, Entity: entity}
}

// Failed builds a failed result
func Failed(message, details string) Result {
	return Result{Success: false, Err: &ResultError{Message: message, Details: details}}
}

// Skipped builds a non-failure result for events that need no action
func Skipped(message string) Result {
	return Result{Success: false, Message: message}
}
