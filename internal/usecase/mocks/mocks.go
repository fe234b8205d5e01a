// Package mocks provides hand-written test doubles for the usecase
// interfaces. The account mock behaves as a real in-memory registry so
// tests can drive full operations and assert final balances.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sidibe/caisse/internal/domain"
	"github.com/sidibe/caisse/internal/usecase"
)

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	mu   sync.Mutex
	Last *MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Last = &MockTransaction{}
	return m.Last, nil
}

// MockAccountRepository is an in-memory account registry.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[domain.AccountKey]*domain.Account
	nextID   int

	ResolveForUpdateFunc func(ctx context.Context, tx usecase.Transaction, keys []domain.AccountKey) ([]*domain.Account, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[domain.AccountKey]*domain.Account),
	}
}

// Seed sets a balance directly, creating the account if needed.
func (m *MockAccountRepository) Seed(ownerID string, kind domain.AccountKind, balance int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getOrCreate(domain.AccountKey{OwnerID: ownerID, Kind: kind}).Balance = balance
}

// Balance reads a balance; missing accounts read as 0.
func (m *MockAccountRepository) Balance(ownerID string, kind domain.AccountKind) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[domain.AccountKey{OwnerID: ownerID, Kind: kind}]; ok {
		return acc.Balance
	}
	return 0
}

func (m *MockAccountRepository) getOrCreate(key domain.AccountKey) *domain.Account {
	if acc, ok := m.accounts[key]; ok {
		return acc
	}
	m.nextID++
	acc := &domain.Account{
		ID:      "acc-" + key.OwnerID + "-" + string(key.Kind),
		OwnerID: key.OwnerID,
		Kind:    key.Kind,
	}
	m.accounts[key] = acc
	return acc
}

func (m *MockAccountRepository) ResolveForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.AccountKey) ([]*domain.Account, error) {
	if m.ResolveForUpdateFunc != nil {
		return m.ResolveForUpdateFunc(ctx, tx, keys)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Account, 0, len(keys))
	for _, key := range keys {
		acc := m.getOrCreate(key)
		cp := *acc
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.ID == id {
			acc.Balance = balance
			acc.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Account
	for _, acc := range m.accounts {
		if acc.OwnerID == ownerID {
			cp := *acc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) ListByOwners(ctx context.Context, ownerIDs []string) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, id := range ownerIDs {
		accs, _ := m.ListByOwner(ctx, id)
		out = append(out, accs...)
	}
	return out, nil
}

// MockCreditRepository is an in-memory credit store keyed by reference.
type MockCreditRepository struct {
	mu      sync.Mutex
	credits map[string]*domain.Credit

	CreateFunc                  func(ctx context.Context, tx usecase.Transaction, credit *domain.Credit) error
	GetByReferenceForUpdateFunc func(ctx context.Context, tx usecase.Transaction, reference string) (*domain.Credit, error)
}

func NewMockCreditRepository() *MockCreditRepository {
	return &MockCreditRepository{credits: make(map[string]*domain.Credit)}
}

func (m *MockCreditRepository) Create(ctx context.Context, tx usecase.Transaction, credit *domain.Credit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, credit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *credit
	m.credits[credit.Reference] = &cp
	return nil
}

func (m *MockCreditRepository) GetByReference(ctx context.Context, reference string) (*domain.Credit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.credits[reference]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrCreditNotFound
}

func (m *MockCreditRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, reference string) (*domain.Credit, error) {
	if m.GetByReferenceForUpdateFunc != nil {
		return m.GetByReferenceForUpdateFunc(ctx, tx, reference)
	}
	return m.GetByReference(ctx, reference)
}

func (m *MockCreditRepository) Update(ctx context.Context, tx usecase.Transaction, credit *domain.Credit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.credits[credit.Reference]; !ok {
		return domain.ErrCreditNotFound
	}
	cp := *credit
	m.credits[credit.Reference] = &cp
	return nil
}

func (m *MockCreditRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Credit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Credit
	for _, c := range m.credits {
		if c.ShopID == shopID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockPaymentRepository is an in-memory payment store.
type MockPaymentRepository struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx usecase.Transaction, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *payment
	m.payments[payment.ID] = &cp
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func (m *MockPaymentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Payment, error) {
	return m.GetByID(ctx, id)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.Status = status
	p.UpdatedAt = updatedAt
	return nil
}

func (m *MockPaymentRepository) ListByCredit(ctx context.Context, reference string) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.CreditReference == reference {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockExpenseRepository is an in-memory expense store.
type MockExpenseRepository struct {
	mu       sync.Mutex
	expenses map[string]*domain.Expense
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{expenses: make(map[string]*domain.Expense)}
}

func (m *MockExpenseRepository) Create(ctx context.Context, tx usecase.Transaction, expense *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *expense
	m.expenses[expense.ID] = &cp
	return nil
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.expenses[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.expenses[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *MockExpenseRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.ExpenseStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.expenses[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	e.Status = status
	e.UpdatedAt = updatedAt
	return nil
}

func (m *MockExpenseRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Expense
	for _, e := range m.expenses {
		if e.ShopID == shopID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockStockMovementRepository is an in-memory movement store.
type MockStockMovementRepository struct {
	mu        sync.Mutex
	movements map[string]*domain.StockMovement
}

func NewMockStockMovementRepository() *MockStockMovementRepository {
	return &MockStockMovementRepository{movements: make(map[string]*domain.StockMovement)}
}

func (m *MockStockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *movement
	m.movements[movement.ID] = &cp
	return nil
}

func (m *MockStockMovementRepository) GetByID(ctx context.Context, id string) (*domain.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mv, ok := m.movements[id]; ok {
		cp := *mv
		return &cp, nil
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockStockMovementRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mv, ok := m.movements[id]; ok {
		cp := *mv
		return &cp, nil
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockStockMovementRepository) Update(ctx context.Context, tx usecase.Transaction, movement *domain.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movements[movement.ID]; !ok {
		return domain.ErrMovementNotFound
	}
	cp := *movement
	m.movements[movement.ID] = &cp
	return nil
}

func (m *MockStockMovementRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*domain.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.StockMovement
	for _, mv := range m.movements {
		if mv.ProductID == productID {
			cp := *mv
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockProductRepository is an in-memory product store.
type MockProductRepository struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]*domain.Product)}
}

func (m *MockProductRepository) Put(p *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.products[p.ID] = &cp
}

func (m *MockProductRepository) Stock(id string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		return p.Stock
	}
	return 0
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Product, error) {
	return m.GetByID(ctx, id)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += delta
	p.UpdatedAt = updatedAt
	return nil
}

// MockDepositRepository is an in-memory deposit store.
type MockDepositRepository struct {
	mu       sync.Mutex
	deposits map[string]*domain.Deposit
}

func NewMockDepositRepository() *MockDepositRepository {
	return &MockDepositRepository{deposits: make(map[string]*domain.Deposit)}
}

func (m *MockDepositRepository) Create(ctx context.Context, tx usecase.Transaction, deposit *domain.Deposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *deposit
	m.deposits[deposit.ID] = &cp
	return nil
}

func (m *MockDepositRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.deposits[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrDepositNotFound
}

func (m *MockDepositRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.HandoverStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.deposits[id]
	if !ok {
		return domain.ErrDepositNotFound
	}
	d.Status = status
	d.UpdatedAt = updatedAt
	return nil
}

func (m *MockDepositRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Deposit
	for _, d := range m.deposits {
		if d.ShopID == shopID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockRefillRepository is an in-memory refill store.
type MockRefillRepository struct {
	mu      sync.Mutex
	refills map[string]*domain.CashRefill
}

func NewMockRefillRepository() *MockRefillRepository {
	return &MockRefillRepository{refills: make(map[string]*domain.CashRefill)}
}

func (m *MockRefillRepository) Create(ctx context.Context, tx usecase.Transaction, refill *domain.CashRefill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *refill
	m.refills[refill.ID] = &cp
	return nil
}

func (m *MockRefillRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.CashRefill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.refills[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrRefillNotFound
}

func (m *MockRefillRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.HandoverStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.refills[id]
	if !ok {
		return domain.ErrRefillNotFound
	}
	r.Status = status
	r.UpdatedAt = updatedAt
	return nil
}

func (m *MockRefillRepository) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*domain.CashRefill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.CashRefill
	for _, r := range m.refills {
		if r.ShopID == shopID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockShopRepository serves a fixed scope per shop.
type MockShopRepository struct {
	mu     sync.Mutex
	scopes map[string]domain.ShopScope
}

func NewMockShopRepository() *MockShopRepository {
	return &MockShopRepository{scopes: make(map[string]domain.ShopScope)}
}

func (m *MockShopRepository) SetScope(scope domain.ShopScope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scopes[scope.ShopID] = scope
}

func (m *MockShopRepository) GetScope(ctx context.Context, shopID string) (domain.ShopScope, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.scopes[shopID]; ok {
		return s, nil
	}
	return domain.ShopScope{}, domain.ErrShopNotFound
}

// MockOutboxRepository collects events.
type MockOutboxRepository struct {
	mu     sync.Mutex
	Events []*domain.OutboxEvent
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OutboxEvent
	for _, e := range m.Events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return nil
}

// MockReferenceSequence hands out increasing sequence numbers.
type MockReferenceSequence struct {
	mu  sync.Mutex
	seq int64
}

func NewMockReferenceSequence() *MockReferenceSequence {
	return &MockReferenceSequence{}
}

func (m *MockReferenceSequence) Next(ctx context.Context, tx usecase.Transaction) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq, nil
}

// MockIDGenerator generates deterministic IDs.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%06d", m.n)
}
