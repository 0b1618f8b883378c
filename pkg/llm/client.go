package llm

import "context"

// Client is the completion function the advisory layer depends on: one
// blocking call that turns a prompt into free text. Implementations may be
// slow or unavailable; failures are classified by the sentinel errors in
// this package.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
