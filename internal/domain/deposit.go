package domain

import "time"

type HandoverStatus string

const (
	HandoverPending   HandoverStatus = "PENDING"
	HandoverValidated HandoverStatus = "VALIDATED"
	HandoverRejected  HandoverStatus = "REJECTED"
)

// Deposit (versement) is a staff-to-admin cash handover awaiting
// validation. Validation debits the staff member's general cash; the
// admin's account is intentionally left untouched, matching the observed
// business flow.
type Deposit struct {
	ID        string
	StaffID   string
	ShopID    string
	Amount    int64
	Status    HandoverStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks a deposit at creation.
func (d *Deposit) Validate() error {
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MarkValidated moves PENDING → VALIDATED.
func (d *Deposit) MarkValidated() error {
	if d.Status != HandoverPending {
		return ErrInvalidStateTransition
	}
	d.Status = HandoverValidated
	return nil
}

// MarkRejected moves PENDING or VALIDATED → REJECTED. Rejecting an
// already validated deposit triggers the balance reversal.
func (d *Deposit) MarkRejected() error {
	if d.Status == HandoverRejected {
		return ErrInvalidStateTransition
	}
	d.Status = HandoverRejected
	return nil
}

// CashRefill (rechargement) is an admin-authorized cash injection into
// the shop's staff accounts.
type CashRefill struct {
	ID        string
	AdminID   string
	ShopID    string
	Amount    int64
	Status    HandoverStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks a refill at creation.
func (r *CashRefill) Validate() error {
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MarkValidated moves PENDING → VALIDATED.
func (r *CashRefill) MarkValidated() error {
	if r.Status != HandoverPending {
		return ErrInvalidStateTransition
	}
	r.Status = HandoverValidated
	return nil
}

// MarkRejected moves PENDING → REJECTED.
func (r *CashRefill) MarkRejected() error {
	if r.Status != HandoverPending {
		return ErrInvalidStateTransition
	}
	r.Status = HandoverRejected
	return nil
}
