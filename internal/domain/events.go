package domain

import "time"

// Event types
const (
	// EventTypeLedgerUpdated is broadcast after every successful commit
	// that touched an account. No payload beyond the aggregate reference;
	// viewers refresh their balances on receipt.
	EventTypeLedgerUpdated = "ledger.updated"
)

// Aggregate types
const (
	AggregateTypeCredit   = "credit"
	AggregateTypePayment  = "payment"
	AggregateTypeExpense  = "expense"
	AggregateTypeMovement = "stock_movement"
	AggregateTypeDeposit  = "deposit"
	AggregateTypeRefill   = "cash_refill"
)

// OutboxEvent is written in the same transaction as the balance changes
// and published after commit.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// LedgerUpdated builds the single notification event for a committed
// ledger mutation.
func LedgerUpdated(id, aggregateType, aggregateID, shopID string, now time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     EventTypeLedgerUpdated,
		Payload: map[string]any{
			"shop_id": shopID,
		},
		CreatedAt: now,
		Published: false,
	}
}
