package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrGoalNotFound is returned when a goal id does not match any goal
	// owned by the caller.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrNoSnapshot is returned by CachedSnapshot when the local cache
	// holds no projection for the owner.
	ErrNoSnapshot = errors.New("no cached snapshot")
)

// ValidationError reports malformed caller input. Always recoverable by
// re-prompting; names the violated field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RemoteUnavailableError wraps a transport- or server-level failure of the
// remote store. The ledger never retries; that choice belongs to the caller.
type RemoteUnavailableError struct {
	Err error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("remote store unavailable: %v", e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error { return e.Err }

// InsufficientFundsError rejects a withdrawal larger than the goal's
// current balance.
type InsufficientFundsError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %s, available %s",
		e.Requested, e.Available)
}

// PartialFailureError reports that a transaction was persisted but the
// follow-up goal update was not. The transaction remains visible in history;
// the goal balance is flagged as possibly stale. This must be surfaced, not
// hidden: silent divergence between history and balance is the worst failure
// mode this system has.
type PartialFailureError struct {
	TransactionID uuid.UUID
	GoalID        uuid.UUID
	Err           error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("transaction %s recorded but goal %s update failed: %v",
		e.TransactionID, e.GoalID, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
