package domain

import "time"

// AccountKind identifies the purpose of a caisse.
type AccountKind string

const (
	KindGeneralCash    AccountKind = "CAISSE_GENERALE"
	KindPrincipalCash  AccountKind = "CAISSE_PRINCIPALE"
	KindSaleCredit     AccountKind = "CREDIT_VENTE"
	KindGrossStockValue AccountKind = "VALEUR_STOCK_BRUTE"
	KindNetStockValue  AccountKind = "VALEUR_STOCK_NETTE"
	KindProfit         AccountKind = "BENEFICE"
	KindProfitOnCredit AccountKind = "BENEFICE_CREDIT"
	KindPurchaseCredit AccountKind = "CREDIT_ACHAT"
	KindCashPurchases  AccountKind = "ACHATS_ESPECES"
	KindCashLentOut    AccountKind = "ARGENT_PRETE"
	KindCashReceivedIn AccountKind = "ARGENT_RECU"
)

var validKinds = map[AccountKind]bool{
	KindGeneralCash:     true,
	KindPrincipalCash:   true,
	KindSaleCredit:      true,
	KindGrossStockValue: true,
	KindNetStockValue:   true,
	KindProfit:          true,
	KindProfitOnCredit:  true,
	KindPurchaseCredit:  true,
	KindCashPurchases:   true,
	KindCashLentOut:     true,
	KindCashReceivedIn:  true,
}

// IsValid checks if the kind is a known caisse kind.
func (k AccountKind) IsValid() bool {
	return validKinds[k]
}

// Account is a balance cell scoped to one owner and one kind.
// Balances are signed integers in the minor currency unit.
// At most one account exists per (OwnerID, Kind); accounts are created
// lazily on first reference and never deleted.
type Account struct {
	ID        string
	OwnerID   string
	Kind      AccountKind
	Balance   int64
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the registry key of the account.
func (a *Account) Key() AccountKey {
	return AccountKey{OwnerID: a.OwnerID, Kind: a.Kind}
}

// ValidateDebit checks that debiting amount would not take the balance
// negative. Only guarded effects call this; most kinds carry unguarded
// signed balances.
func (a *Account) ValidateDebit(amount int64) error {
	if a.Balance-amount < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// AccountKey identifies one account in the registry.
type AccountKey struct {
	OwnerID string
	Kind    AccountKind
}

// Less orders keys by (OwnerID, Kind). Every transaction locks its
// accounts in this order, which rules out lock-order deadlocks between
// operations touching overlapping account sets.
func (k AccountKey) Less(other AccountKey) bool {
	if k.OwnerID != other.OwnerID {
		return k.OwnerID < other.OwnerID
	}
	return k.Kind < other.Kind
}
