package usecase

import (
	"context"

	"github.com/sidibe/caisse/internal/domain"
)

// AccountUseCase serves the balance read model.
type AccountUseCase struct {
	accountRepo AccountRepository
	shopRepo    ShopRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, shopRepo ShopRepository) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		shopRepo:    shopRepo,
	}
}

// OwnerBalances returns all caisse balances for one owner.
func (uc *AccountUseCase) OwnerBalances(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, ownerID)
}

// ShopBalances returns the caisse balances of every member of the shop,
// admin included.
func (uc *AccountUseCase) ShopBalances(ctx context.Context, shopID string) ([]*domain.Account, error) {
	scope, err := uc.shopRepo.GetScope(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	return uc.accountRepo.ListByOwners(ctx, scope.Members())
}
