package domain

import "time"

type ExpenseStatus string

const (
	ExpenseValid     ExpenseStatus = "VALID"
	ExpenseCancelled ExpenseStatus = "CANCELLED"
)

// Expense debits the actor's and the shop admin's general cash at
// creation; cancellation credits both back.
type Expense struct {
	ID        string
	ActorID   string
	ShopID    string
	Label     string
	Amount    int64
	Status    ExpenseStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks an expense at creation.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Cancel marks the expense cancelled; cancelling twice is rejected.
func (e *Expense) Cancel() error {
	if e.Status != ExpenseValid {
		return ErrInvalidStateTransition
	}
	e.Status = ExpenseCancelled
	return nil
}
