package domain

import "time"

type PaymentStatus string

const (
	PaymentApplied   PaymentStatus = "APPLIED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Payment applies against exactly one credit, identified by reference.
type Payment struct {
	ID              string
	CreditReference string
	ActorID         string
	ShopID          string
	Amount          int64
	Status          PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks a payment at creation.
func (p *Payment) Validate() error {
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Cancel marks the payment cancelled; cancelling twice is rejected.
func (p *Payment) Cancel() error {
	if p.Status != PaymentApplied {
		return ErrInvalidStateTransition
	}
	p.Status = PaymentCancelled
	return nil
}
