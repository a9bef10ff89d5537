package oracle

import "context"

// Oracle answers randomness requests for a session. The seed tags the
// request; whether it influences the value is up to the implementation
type Oracle interface {
	// Random returns a random value for the request tagged with seed
	Random(ctx context.Context, seed uint64) (uint64, error)
}
