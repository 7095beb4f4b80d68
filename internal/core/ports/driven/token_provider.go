package driven

import "context"

// TokenProvider supplies the bearer token attached to authenticated
// content API calls.
type TokenProvider interface {
	// GetToken returns the current token.
	// Returns an empty string and no error when logged out, in which case
	// the request is sent without credentials and the server decides.
	GetToken(ctx context.Context) (string, error)
}
