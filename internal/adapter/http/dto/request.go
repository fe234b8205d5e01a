package dto

// IssueCreditRequest is the body for issuing a credit.
type IssueCreditRequest struct {
	ShopID    string `json:"shop_id"`
	ClientID  string `json:"client_id"`
	Direction string `json:"direction"`
	Kind      string `json:"kind"`
	Amount    int64  `json:"amount"`
}

// PayCreditRequest is the body for applying a payment against a credit.
type PayCreditRequest struct {
	Amount int64 `json:"amount"`
}

// CreateExpenseRequest is the body for recording an expense.
type CreateExpenseRequest struct {
	ShopID string `json:"shop_id"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// RecordMovementRequest is the body for recording a stock movement.
type RecordMovementRequest struct {
	ProductID string `json:"product_id"`
	ShopID    string `json:"shop_id"`
	Quantity  int64  `json:"quantity"`
	Direction string `json:"direction"`
}

// UpdateMovementRequest is the body for correcting a movement quantity.
type UpdateMovementRequest struct {
	Quantity int64 `json:"quantity"`
}

// CreateDepositRequest is the body for declaring a versement.
type CreateDepositRequest struct {
	ShopID string `json:"shop_id"`
	Amount int64  `json:"amount"`
}

// RequestRefillRequest is the body for requesting a rechargement.
type RequestRefillRequest struct {
	ShopID string `json:"shop_id"`
	Amount int64  `json:"amount"`
}
