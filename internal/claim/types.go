// Package claim holds the claim session state machine: resolving owned
// tokens, tracking selection, validating labels, submitting claim
// transactions, and classifying failures.
package claim

// Status is the lifecycle state of a claim within a session.
type Status int

// Claim lifecycle states.
const (
	// StatusIdle means no claim has been submitted, or the last attempt
	// failed before broadcast and may be retried.
	StatusIdle Status = iota

	// StatusPending means a claim transaction is broadcast and unmined.
	StatusPending

	// StatusConfirmed means the claim transaction succeeded. Terminal
	// for the session.
	StatusConfirmed

	// StatusReverted means the claim transaction was mined but failed.
	// A new claim may be submitted.
	StatusReverted
)

// String returns the state name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// TransactionRecord tracks one broadcast claim transaction.
type TransactionRecord struct {
	// Hash is the transaction hash returned at broadcast.
	Hash string

	// Label is the claimed label.
	Label string

	// TokenID is the token the claim was made with, as a decimal string.
	TokenID string

	// Status is the transaction's lifecycle state.
	Status Status
}
