package domain

import "time"

// CreditDirection distinguishes money lent to a client (SORTIE) from
// money received from one (ENTRE).
type CreditDirection string

const (
	CreditOut CreditDirection = "SORTIE"
	CreditIn  CreditDirection = "ENTRE"
)

// IsValid checks the direction tag.
func (d CreditDirection) IsValid() bool {
	return d == CreditOut || d == CreditIn
}

// CreditKind distinguishes a cash credit from a sale on credit.
type CreditKind string

const (
	CreditCash CreditKind = "CASH"
	CreditSale CreditKind = "SALE"
)

// IsValid checks the kind tag.
func (k CreditKind) IsValid() bool {
	return k == CreditCash || k == CreditSale
}

type CreditStatus string

const (
	CreditUnpaid     CreditStatus = "UNPAID"
	CreditInProgress CreditStatus = "IN_PROGRESS"
	CreditPaid       CreditStatus = "PAID"
	CreditCancelled  CreditStatus = "CANCELLED"
)

// Credit tracks money lent out or received on behalf of a client until
// repayment. While not cancelled, AmountPaid + AmountRemaining == Amount.
type Credit struct {
	ID              string
	Reference       string
	OwnerID         string
	ClientID        string
	ShopID          string
	Direction       CreditDirection
	Kind            CreditKind
	Amount          int64
	AmountPaid      int64
	AmountRemaining int64
	Status          CreditStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks a credit at issuance.
func (c *Credit) Validate() error {
	if !c.Direction.IsValid() {
		return ErrInvalidDirection
	}
	if !c.Kind.IsValid() {
		return ErrInvalidKind
	}
	if c.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ApplyPayment records a payment of amount against the credit and moves
// the status forward. Paying more than the remaining amount is rejected.
func (c *Credit) ApplyPayment(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if c.Status == CreditCancelled || c.Status == CreditPaid {
		return ErrInvalidStateTransition
	}
	if amount > c.AmountRemaining {
		return ErrInvalidStateTransition
	}

	c.AmountPaid += amount
	c.AmountRemaining -= amount

	if c.AmountRemaining == 0 {
		c.Status = CreditPaid
	} else {
		c.Status = CreditInProgress
	}

	return nil
}

// UnapplyPayment reverses a previously applied payment, re-deriving the
// paid/remaining amounts and status.
func (c *Credit) UnapplyPayment(amount int64) error {
	if c.Status == CreditCancelled {
		return ErrInvalidStateTransition
	}
	if amount <= 0 || amount > c.AmountPaid {
		return ErrInvalidStateTransition
	}

	c.AmountPaid -= amount
	c.AmountRemaining += amount

	if c.AmountPaid == 0 {
		c.Status = CreditUnpaid
	} else {
		c.Status = CreditInProgress
	}

	return nil
}

// Cancel moves the credit to its terminal state. Cancellation is one-way
// and rejects a second attempt.
func (c *Credit) Cancel() error {
	if c.Status == CreditCancelled {
		return ErrInvalidStateTransition
	}
	c.Status = CreditCancelled
	return nil
}
