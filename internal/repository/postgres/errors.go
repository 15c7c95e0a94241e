package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"thoughts-api/internal/domain"

	"github.com/lib/pq"
)

const (
	pqCheckViolation   = "23514"
	pqConnectionClass  = "08"
	pqResourcesClass   = "53"
	pqAdminShutdown    = "57P01"
	pqCannotConnectNow = "57P03"

	messageLengthConstraint = "thoughts_message_length"
)

// IsCheckViolation reports whether err is a PostgreSQL CHECK constraint violation.
// If constraint is empty, any check violation matches.
func IsCheckViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	if string(pqErr.Code) != pqCheckViolation {
		return false
	}

	if constraint == "" {
		return true
	}

	return pqErr.Constraint == constraint
}

// IsUnavailable reports whether err means the database could not be reached
// or did not answer in time
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == pqConnectionClass, pqErr.Code.Class() == pqResourcesClass:
			return true
		case pqErr.Code == pqAdminShutdown, pqErr.Code == pqCannotConnectNow:
			return true
		}
	}

	return false
}

func wrapError(op string, err error) error {
	switch {
	case IsUnavailable(err):
		return fmt.Errorf("failed to %s: %w: %w", op, domain.ErrStoreUnavailable, err)
	case IsCheckViolation(err, messageLengthConstraint):
		return fmt.Errorf("%w: message must be between %d and %d characters",
			domain.ErrValidation, domain.MessageMinLength, domain.MessageMaxLength)
	case IsCheckViolation(err, ""):
		return fmt.Errorf("%w: failed to %s", domain.ErrValidation, op)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
