package mongo

import (
	"errors"
	"fmt"

	"thoughts-api/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsUnavailable reports whether err means the server could not be reached
// or did not answer in time, as opposed to rejecting the operation
func IsUnavailable(err error) bool {
	return mongo.IsTimeout(err) ||
		mongo.IsNetworkError(err) ||
		errors.Is(err, mongo.ErrClientDisconnected)
}

func wrapError(op string, err error) error {
	if IsUnavailable(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
