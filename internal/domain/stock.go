package domain

import "time"

// StockDirection is the canonical direction tag for stock movements.
// The legacy system used both "ENTRE" and "ENTREE" for entries, which
// made some cancellation paths skip the valuation adjustment; only
// "ENTREE" is accepted here.
type StockDirection string

const (
	StockIn  StockDirection = "ENTREE"
	StockOut StockDirection = "SORTIE"
)

// IsValid checks the direction tag.
func (d StockDirection) IsValid() bool {
	return d == StockIn || d == StockOut
}

type MovementStatus string

const (
	MovementValid     MovementStatus = "VALID"
	MovementCancelled MovementStatus = "CANCELLED"
)

// StockMovement drives a physical stock change on a product and a
// valuation change fanned out across the shop's members.
type StockMovement struct {
	ID        string
	ProductID string
	ActorID   string
	ShopID    string
	Quantity  int64
	Direction StockDirection
	Status    MovementStatus
	// UnitPrice is the product purchase price recorded when the movement
	// was applied; cancellation reverses at this price, not the current one.
	UnitPrice int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks a movement at creation.
func (m *StockMovement) Validate() error {
	if m.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !m.Direction.IsValid() {
		return ErrInvalidDirection
	}
	return nil
}

// SignedQuantity returns the quantity with the direction's sign applied.
func (m *StockMovement) SignedQuantity() int64 {
	if m.Direction == StockOut {
		return -m.Quantity
	}
	return m.Quantity
}

// Cancel marks the movement cancelled; cancelling twice is rejected.
func (m *StockMovement) Cancel() error {
	if m.Status != MovementValid {
		return ErrInvalidStateTransition
	}
	m.Status = MovementCancelled
	return nil
}

// Product carries the stock quantity and the purchase price used for
// valuation, both in minor currency units.
type Product struct {
	ID            string
	ShopID        string
	Name          string
	PurchasePrice int64
	SalePrice     int64
	Stock         int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
