package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. A stalled transaction fails the whole operation
	// instead of leaving account rows locked.
	DefaultTransactionTimeout = 10 * time.Second
)
