package extract

import "context"

// Completer sends a system+user prompt exchange to a chat completion
// provider and returns the raw assistant text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
