// Package ledger contains the pure rule compiler: every business event
// maps to an ordered effect set over the shop's caisse accounts. The
// functions here never touch storage; the executor applies their output
// atomically.
package ledger

import (
	"github.com/sidibe/caisse/internal/domain"
)

// shadowKind returns the exposure account used for a credit of the given
// direction and kind. SORTIE credits track money lent out (or goods sold
// on credit), ENTRE credits track money received in.
func shadowKind(direction domain.CreditDirection, kind domain.CreditKind) domain.AccountKind {
	if direction == domain.CreditIn {
		return domain.KindCashReceivedIn
	}
	if kind == domain.CreditSale {
		return domain.KindSaleCredit
	}
	return domain.KindCashLentOut
}

type creditRuleKey struct {
	direction domain.CreditDirection
	kind      domain.CreditKind
}

// IssueCredit compiles the effect set for issuing a credit.
//
// SORTIE/CASH: cash leaves the shop, so the issuer's and the admin's
// general cash decrease while both cash-lent-out accounts grow by the
// same amount. SORTIE/SALE moves goods, not cash: only the sale-credit
// exposure grows. ENTRE mirrors SORTIE/CASH with opposite signs against
// the cash-received-in account.
func IssueCredit(scope domain.ShopScope, credit *domain.Credit) domain.EffectSet {
	shadow := shadowKind(credit.Direction, credit.Kind)
	amount := credit.Amount

	set := domain.EffectSet{
		{OwnerID: scope.AdminID, Kind: shadow, Delta: amount},
		{OwnerID: credit.OwnerID, Kind: shadow, Delta: amount},
	}

	if credit.Direction == domain.CreditOut && credit.Kind == domain.CreditCash {
		set = append(set,
			domain.Effect{OwnerID: credit.OwnerID, Kind: domain.KindGeneralCash, Delta: -amount},
			domain.Effect{OwnerID: scope.AdminID, Kind: domain.KindGeneralCash, Delta: -amount},
		)
	}

	if credit.Direction == domain.CreditIn {
		set = append(set,
			domain.Effect{OwnerID: credit.OwnerID, Kind: domain.KindGeneralCash, Delta: amount},
			domain.Effect{OwnerID: scope.AdminID, Kind: domain.KindGeneralCash, Delta: amount},
		)
	}

	return set
}

// CancelCredit compiles the exact negation of the issuance effect set,
// computed from the credit's recorded amount, never from request input.
func CancelCredit(scope domain.ShopScope, credit *domain.Credit) domain.EffectSet {
	return IssueCredit(scope, credit).Negate()
}

// paymentRules maps (direction, kind) to the payment effect shape.
// Keyed lookup replaces the role-string branching of the legacy flows.
var paymentRules = map[creditRuleKey]func(scope domain.ShopScope, amount int64) domain.EffectSet{
	{domain.CreditOut, domain.CreditCash}: func(scope domain.ShopScope, amount int64) domain.EffectSet {
		return payOutboundCredit(scope, domain.KindCashLentOut, amount)
	},
	{domain.CreditOut, domain.CreditSale}: func(scope domain.ShopScope, amount int64) domain.EffectSet {
		return payOutboundCredit(scope, domain.KindSaleCredit, amount)
	},
	{domain.CreditIn, domain.CreditCash}: payInboundCredit,
	{domain.CreditIn, domain.CreditSale}: payInboundCredit,
}

// payOutboundCredit: the repaid cash enters every member's general cash
// while the shadow exposure unwinds shop-wide.
func payOutboundCredit(scope domain.ShopScope, shadow domain.AccountKind, amount int64) domain.EffectSet {
	set := domain.EffectSet{
		{OwnerID: scope.AdminID, Kind: shadow, Delta: -amount},
	}

	for _, staffID := range scope.StaffIDs {
		set = append(set,
			domain.Effect{OwnerID: staffID, Kind: domain.KindGeneralCash, Delta: amount},
			domain.Effect{OwnerID: staffID, Kind: shadow, Delta: -amount},
		)
	}

	set = append(set, domain.Effect{OwnerID: scope.AdminID, Kind: domain.KindGeneralCash, Delta: amount})

	return set
}

// payInboundCredit: paying back money the shop received means cash goes
// out and the received-in exposure unwinds, for the admin and every
// staff member alike.
func payInboundCredit(scope domain.ShopScope, amount int64) domain.EffectSet {
	set := domain.EffectSet{
		{OwnerID: scope.AdminID, Kind: domain.KindCashReceivedIn, Delta: -amount},
		{OwnerID: scope.AdminID, Kind: domain.KindGeneralCash, Delta: -amount},
	}

	for _, staffID := range scope.StaffIDs {
		set = append(set,
			domain.Effect{OwnerID: staffID, Kind: domain.KindGeneralCash, Delta: -amount},
			domain.Effect{OwnerID: staffID, Kind: domain.KindCashReceivedIn, Delta: -amount},
		)
	}

	return set
}

// PayCredit compiles the effect set for a payment of amount against the
// credit.
func PayCredit(scope domain.ShopScope, credit *domain.Credit, amount int64) domain.EffectSet {
	rule := paymentRules[creditRuleKey{credit.Direction, credit.Kind}]
	if rule == nil {
		return nil
	}
	return rule(scope, amount)
}

// CancelPayment compiles the exact negation of the payment effect set
// for the payment's recorded amount.
func CancelPayment(scope domain.ShopScope, credit *domain.Credit, payment *domain.Payment) domain.EffectSet {
	return PayCredit(scope, credit, payment.Amount).Negate()
}

// CreateExpense compiles the effect set for an expense: the actor's and
// the shop admin's general cash are debited, both guarded against going
// negative. When the actor is the admin only one debit applies.
func CreateExpense(scope domain.ShopScope, actorID string, amount int64) domain.EffectSet {
	set := domain.EffectSet{
		{OwnerID: actorID, Kind: domain.KindGeneralCash, Delta: -amount, Guarded: true},
	}

	if actorID != scope.AdminID {
		set = append(set, domain.Effect{
			OwnerID: scope.AdminID, Kind: domain.KindGeneralCash, Delta: -amount, Guarded: true,
		})
	}

	return set
}

// CancelExpense compiles the inverse credit back to the actor and admin.
func CancelExpense(scope domain.ShopScope, expense *domain.Expense) domain.EffectSet {
	return CreateExpense(scope, expense.ActorID, expense.Amount).Negate()
}

// StockValuation compiles the fan-out of a stock valuation change:
// signedQuantity × unitPrice applied, unmodified, to the net-stock-value
// account of every shop member. The net stock value is a shop-wide
// shared read model, independent of who performed the movement.
func StockValuation(scope domain.ShopScope, signedQuantity, unitPrice int64) domain.EffectSet {
	delta := signedQuantity * unitPrice

	var set domain.EffectSet
	for _, memberID := range scope.Members() {
		set = append(set, domain.Effect{
			OwnerID: memberID, Kind: domain.KindNetStockValue, Delta: delta,
		})
	}

	return set
}

// CancelStockMovement reverses the valuation of a recorded movement at
// the unit price captured when it was applied.
func CancelStockMovement(scope domain.ShopScope, movement *domain.StockMovement) domain.EffectSet {
	return StockValuation(scope, movement.SignedQuantity(), movement.UnitPrice).Negate()
}

// ValidateDeposit compiles the effect of validating a versement: the
// staff member's general cash is debited. The admin's cash account is
// intentionally not credited here; admin cash is tracked through the
// credited flows elsewhere.
func ValidateDeposit(deposit *domain.Deposit) domain.EffectSet {
	return domain.EffectSet{
		{OwnerID: deposit.StaffID, Kind: domain.KindGeneralCash, Delta: -deposit.Amount},
	}
}

// RejectValidatedDeposit restores the staff member's general cash after
// a validated deposit is rejected.
func RejectValidatedDeposit(deposit *domain.Deposit) domain.EffectSet {
	return ValidateDeposit(deposit).Negate()
}

// ValidateRefill compiles the effect of validating a rechargement:
// every staff member of the shop receives the amount, not only the
// requester.
func ValidateRefill(scope domain.ShopScope, refill *domain.CashRefill) domain.EffectSet {
	var set domain.EffectSet
	for _, staffID := range scope.StaffIDs {
		set = append(set, domain.Effect{
			OwnerID: staffID, Kind: domain.KindGeneralCash, Delta: refill.Amount,
		})
	}
	return set
}
