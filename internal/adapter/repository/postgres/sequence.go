package postgres

import (
	"context"

	"github.com/sidibe/caisse/internal/usecase"
)

// ReferenceSequence implements usecase.ReferenceSequence on top of a
// PostgreSQL sequence. nextval never hands the same value to two
// transactions, so references stay unique even under rollback; gaps in
// the numbering are accepted.
type ReferenceSequence struct{}

// NewReferenceSequence creates a new ReferenceSequence.
func NewReferenceSequence() *ReferenceSequence {
	return &ReferenceSequence{}
}

// Next reserves the next credit reference number.
func (s *ReferenceSequence) Next(ctx context.Context, tx usecase.Transaction) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var seq int64
	err := pgxTx.QueryRow(ctx, `SELECT nextval('credit_reference_seq')`).Scan(&seq)
	if err != nil {
		return 0, err
	}

	return seq, nil
}
