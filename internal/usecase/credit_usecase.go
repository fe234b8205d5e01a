package usecase

import (
	"context"
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/infrastructure/metrics"
	"github.com/sidibe/caisse/internal/ledger"
)

// CreditUseCase drives the credit lifecycle: issuance, payment,
// cancellation and their reversals.
type CreditUseCase struct {
	executor    *Executor
	shopRepo    ShopRepository
	creditRepo  CreditRepository
	paymentRepo PaymentRepository
	refSeq      ReferenceSequence
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewCreditUseCase creates a new CreditUseCase.
func NewCreditUseCase(
	executor *Executor,
	shopRepo ShopRepository,
	creditRepo CreditRepository,
	paymentRepo PaymentRepository,
	refSeq ReferenceSequence,
	idGen IDGenerator,
	m *metrics.Metrics,
) *CreditUseCase {
	return &CreditUseCase{
		executor:    executor,
		shopRepo:    shopRepo,
		creditRepo:  creditRepo,
		paymentRepo: paymentRepo,
		refSeq:      refSeq,
		idGen:       idGen,
		metrics:     m,
	}
}

// IssueCreditInput represents input for issuing a credit.
type IssueCreditInput struct {
	ActorID   string
	ShopID    string
	ClientID  string
	Direction domain.CreditDirection
	Kind      domain.CreditKind
	Amount    int64
}

// IssueCredit creates a credit in UNPAID state and applies the issuance
// effect set atomically.
func (uc *CreditUseCase) IssueCredit(ctx context.Context, input IssueCreditInput) (*domain.Credit, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	scope, err := uc.resolveScope(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if !scope.HasMember(input.ActorID) {
		return nil, domain.ErrUnauthorized
	}

	var credit *domain.Credit

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		seq, err := uc.refSeq.Next(ctx, tx)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		credit = &domain.Credit{
			ID:              uc.idGen.Generate(),
			Reference:       domain.FormatReference(seq),
			OwnerID:         input.ActorID,
			ClientID:        input.ClientID,
			ShopID:          input.ShopID,
			Direction:       input.Direction,
			Kind:            input.Kind,
			Amount:          input.Amount,
			AmountPaid:      0,
			AmountRemaining: input.Amount,
			Status:          domain.CreditUnpaid,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := credit.Validate(); err != nil {
			return nil, err
		}

		return &Plan{
			Effects: ledger.IssueCredit(scope, credit),
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeCredit, credit.ID, credit.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.creditRepo.Create(ctx, tx, credit)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CreditsIssued.Inc()
	}

	return credit, nil
}

// PayCreditInput represents input for paying against a credit.
type PayCreditInput struct {
	Reference string
	ActorID   string
	Amount    int64
}

// PayCredit applies a payment against the credit, advances its status
// and fans the repayment out across the shop per the payment rules.
func (uc *CreditUseCase) PayCredit(ctx context.Context, input PayCreditInput) (*domain.Payment, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	scope, err := uc.scopeForCredit(ctx, input.Reference)
	if err != nil {
		return nil, err
	}
	if !scope.HasMember(input.ActorID) {
		return nil, domain.ErrUnauthorized
	}

	var payment *domain.Payment

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		credit, err := uc.creditRepo.GetByReferenceForUpdate(ctx, tx, input.Reference)
		if err != nil {
			return nil, err
		}

		// Compile the effects first: payment rules depend on the
		// direction and kind recorded on the credit.
		effects := ledger.PayCredit(scope, credit, input.Amount)

		if err := credit.ApplyPayment(input.Amount); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		credit.UpdatedAt = now

		payment = &domain.Payment{
			ID:              uc.idGen.Generate(),
			CreditReference: credit.Reference,
			ActorID:         input.ActorID,
			ShopID:          credit.ShopID,
			Amount:          input.Amount,
			Status:          domain.PaymentApplied,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		return &Plan{
			Effects: effects,
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypePayment, payment.ID, credit.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				if err := uc.paymentRepo.Create(ctx, tx, payment); err != nil {
					return err
				}
				return uc.creditRepo.Update(ctx, tx, credit)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsApplied.Inc()
	}

	return payment, nil
}

// CancelCredit moves the credit to CANCELLED and applies the exact
// negation of its issuance effect set, computed from the recorded
// amount.
func (uc *CreditUseCase) CancelCredit(ctx context.Context, reference string) (*domain.Credit, error) {
	scope, err := uc.scopeForCredit(ctx, reference)
	if err != nil {
		return nil, err
	}

	var credit *domain.Credit

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		credit, err = uc.creditRepo.GetByReferenceForUpdate(ctx, tx, reference)
		if err != nil {
			return nil, err
		}

		effects := ledger.CancelCredit(scope, credit)

		if err := credit.Cancel(); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		credit.UpdatedAt = now

		return &Plan{
			Effects: effects,
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypeCredit, credit.ID, credit.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				return uc.creditRepo.Update(ctx, tx, credit)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CreditsCancelled.Inc()
	}

	return credit, nil
}

// CancelPayment reverses a payment: the payment effect set is negated
// and the credit's paid/remaining amounts and status are re-derived.
func (uc *CreditUseCase) CancelPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	existing, err := uc.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	scope, err := uc.scopeForCredit(ctx, existing.CreditReference)
	if err != nil {
		return nil, err
	}

	var payment *domain.Payment

	err = uc.executor.Apply(ctx, func(ctx context.Context, tx Transaction) (*Plan, error) {
		var err error
		payment, err = uc.paymentRepo.GetByIDForUpdate(ctx, tx, paymentID)
		if err != nil {
			return nil, err
		}

		if err := payment.Cancel(); err != nil {
			return nil, err
		}

		credit, err := uc.creditRepo.GetByReferenceForUpdate(ctx, tx, payment.CreditReference)
		if err != nil {
			return nil, err
		}

		effects := ledger.CancelPayment(scope, credit, payment)

		if err := credit.UnapplyPayment(payment.Amount); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		credit.UpdatedAt = now
		payment.UpdatedAt = now

		return &Plan{
			Effects: effects,
			Event:   domain.LedgerUpdated(uc.idGen.Generate(), domain.AggregateTypePayment, payment.ID, credit.ShopID, now),
			Mutate: func(ctx context.Context, tx Transaction) error {
				if err := uc.paymentRepo.UpdateStatus(ctx, tx, payment.ID, domain.PaymentCancelled, now); err != nil {
					return err
				}
				return uc.creditRepo.Update(ctx, tx, credit)
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsCancelled.Inc()
	}

	return payment, nil
}

// GetCredit retrieves a credit by reference together with its payments.
func (uc *CreditUseCase) GetCredit(ctx context.Context, reference string) (*domain.Credit, []*domain.Payment, error) {
	credit, err := uc.creditRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, nil, err
	}

	payments, err := uc.paymentRepo.ListByCredit(ctx, reference)
	if err != nil {
		return nil, nil, err
	}

	return credit, payments, nil
}

// ListCredits lists credits for a shop.
func (uc *CreditUseCase) ListCredits(ctx context.Context, shopID string, limit, offset int) ([]*domain.Credit, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.creditRepo.ListByShop(ctx, shopID, limit, offset)
}

func (uc *CreditUseCase) resolveScope(ctx context.Context, shopID string) (domain.ShopScope, error) {
	scope, err := uc.shopRepo.GetScope(ctx, shopID)
	if err != nil {
		return domain.ShopScope{}, err
	}
	if err := scope.Validate(); err != nil {
		return domain.ShopScope{}, err
	}
	return scope, nil
}

func (uc *CreditUseCase) scopeForCredit(ctx context.Context, reference string) (domain.ShopScope, error) {
	credit, err := uc.creditRepo.GetByReference(ctx, reference)
	if err != nil {
		return domain.ShopScope{}, err
	}
	return uc.resolveScope(ctx, credit.ShopID)
}
