package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUnavailable marks I/O failures and timeouts talking to storage. Retryable.
	ErrUnavailable = errors.New("repository unavailable")

	// ErrConflict marks a concurrent write that could not be serialized.
	ErrConflict = errors.New("concurrent write conflict")
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// Wrap classifies a storage error. Unique violations and serialization
// failures become ErrConflict; connection failures and deadlines become
// ErrUnavailable. Anything else (bad data, scan errors, SQL bugs) is only
// annotated with op. The cause stays in the chain.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation, pgErr.Code == serializationFailure, pgErr.Code == deadlockDetected:
			return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
		case isUnavailableCode(pgErr.Code):
			return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUnavailableCode matches connection exceptions (08), insufficient
// resources (53), operator intervention (57P) and query cancellation by timeout (57014).
func isUnavailableCode(code string) bool {
	return strings.HasPrefix(code, "08") ||
		strings.HasPrefix(code, "53") ||
		strings.HasPrefix(code, "57P") ||
		code == "57014"
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
