package dto

import (
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/money"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Kind      string    `json:"kind"`
	Balance   int64     `json:"balance"`
	Display   string    `json:"display"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Kind:      string(a.Kind),
		Balance:   a.Balance,
		Display:   money.Format(a.Balance),
		Version:   a.Version,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CreditResponse represents a credit in API responses.
type CreditResponse struct {
	ID              string    `json:"id"`
	Reference       string    `json:"reference"`
	OwnerID         string    `json:"owner_id"`
	ClientID        string    `json:"client_id"`
	ShopID          string    `json:"shop_id"`
	Direction       string    `json:"direction"`
	Kind            string    `json:"kind"`
	Amount          int64     `json:"amount"`
	AmountPaid      int64     `json:"amount_paid"`
	AmountRemaining int64     `json:"amount_remaining"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreditFromDomain converts a domain credit to a response.
func CreditFromDomain(c *domain.Credit) *CreditResponse {
	return &CreditResponse{
		ID:              c.ID,
		Reference:       c.Reference,
		OwnerID:         c.OwnerID,
		ClientID:        c.ClientID,
		ShopID:          c.ShopID,
		Direction:       string(c.Direction),
		Kind:            string(c.Kind),
		Amount:          c.Amount,
		AmountPaid:      c.AmountPaid,
		AmountRemaining: c.AmountRemaining,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CreditsFromDomain converts domain credits to responses.
func CreditsFromDomain(credits []*domain.Credit) []*CreditResponse {
	result := make([]*CreditResponse, len(credits))
	for i, c := range credits {
		result[i] = CreditFromDomain(c)
	}
	return result
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID              string    `json:"id"`
	CreditReference string    `json:"credit_reference"`
	ActorID         string    `json:"actor_id"`
	ShopID          string    `json:"shop_id"`
	Amount          int64     `json:"amount"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID,
		CreditReference: p.CreditReference,
		ActorID:         p.ActorID,
		ShopID:          p.ShopID,
		Amount:          p.Amount,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// CreditDetailResponse bundles a credit with its payments.
type CreditDetailResponse struct {
	Credit   *CreditResponse    `json:"credit"`
	Payments []*PaymentResponse `json:"payments"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	ShopID    string    `json:"shop_id"`
	Label     string    `json:"label"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:        e.ID,
		ActorID:   e.ActorID,
		ShopID:    e.ShopID,
		Label:     e.Label,
		Amount:    e.Amount,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// MovementResponse represents a stock movement in API responses.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	ActorID   string    `json:"actor_id"`
	ShopID    string    `json:"shop_id"`
	Quantity  int64     `json:"quantity"`
	Direction string    `json:"direction"`
	Status    string    `json:"status"`
	UnitPrice int64     `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		ActorID:   m.ActorID,
		ShopID:    m.ShopID,
		Quantity:  m.Quantity,
		Direction: string(m.Direction),
		Status:    string(m.Status),
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
	}
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.StockMovement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// DepositResponse represents a deposit in API responses.
type DepositResponse struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	ShopID    string    `json:"shop_id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DepositFromDomain converts a domain deposit to a response.
func DepositFromDomain(d *domain.Deposit) *DepositResponse {
	return &DepositResponse{
		ID:        d.ID,
		StaffID:   d.StaffID,
		ShopID:    d.ShopID,
		Amount:    d.Amount,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

// DepositsFromDomain converts domain deposits to responses.
func DepositsFromDomain(deposits []*domain.Deposit) []*DepositResponse {
	result := make([]*DepositResponse, len(deposits))
	for i, d := range deposits {
		result[i] = DepositFromDomain(d)
	}
	return result
}

// RefillResponse represents a cash refill in API responses.
type RefillResponse struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	ShopID    string    `json:"shop_id"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RefillFromDomain converts a domain refill to a response.
func RefillFromDomain(r *domain.CashRefill) *RefillResponse {
	return &RefillResponse{
		ID:        r.ID,
		AdminID:   r.AdminID,
		ShopID:    r.ShopID,
		Amount:    r.Amount,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

// RefillsFromDomain converts domain refills to responses.
func RefillsFromDomain(refills []*domain.CashRefill) []*RefillResponse {
	result := make([]*RefillResponse, len(refills))
	for i, r := range refills {
		result[i] = RefillFromDomain(r)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
