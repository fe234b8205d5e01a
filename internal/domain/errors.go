package domain

import "errors"

var (
	// Not-found errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrCreditNotFound   = errors.New("credit not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrMovementNotFound = errors.New("stock movement not found")
	ErrDepositNotFound  = errors.New("deposit not found")
	ErrRefillNotFound   = errors.New("cash refill not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrShopNotFound     = errors.New("shop not found")

	// ErrInsufficientBalance means a guarded debit would take an account negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientStock means an outgoing movement exceeds the product stock.
	ErrInsufficientStock = errors.New("insufficient product stock")

	// ErrInvalidStateTransition covers double cancellations, payments past
	// the remaining amount and similar lifecycle violations.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrPrerequisiteAccountMissing signals a broken shop/admin link; an
	// internal consistency fault, not a user input error.
	ErrPrerequisiteAccountMissing = errors.New("prerequisite account missing")

	// ErrConcurrencyConflict is a retryable lock or serialization failure.
	// The caller must re-issue the request.
	ErrConcurrencyConflict = errors.New("concurrency conflict, retry the operation")

	// Input validation
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidKind      = errors.New("invalid kind")
)
