package domain

import (
	"fmt"
	"regexp"
)

// Validation errors
var referenceRegex = regexp.MustCompile(`^CRD-[0-9]{6,}$`)

// Validation constants
const (
	// MaxAmount caps a single operation at 100 million major units
	// expressed in minor units.
	MaxAmount int64 = 10_000_000_000

	// ReferencePrefix and ReferenceWidth define the credit reference
	// format: a constant prefix plus a fixed-width sequence number.
	ReferencePrefix = "CRD-"
	ReferenceWidth  = 6
)

// ValidateAmount validates an operation amount in minor units.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: amount %d exceeds maximum %d", ErrInvalidAmount, amount, MaxAmount)
	}
	return nil
}

// ValidateQuantity validates a stock movement quantity.
func ValidateQuantity(quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidateReference checks the credit reference format.
func ValidateReference(ref string) error {
	if !referenceRegex.MatchString(ref) {
		return fmt.Errorf("%w: bad reference %q", ErrCreditNotFound, ref)
	}
	return nil
}

// FormatReference renders a sequence number as a credit reference.
func FormatReference(seq int64) string {
	return fmt.Sprintf("%s%0*d", ReferencePrefix, ReferenceWidth, seq)
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 200
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
