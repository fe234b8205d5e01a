package redis

import (
	"context"
	"testing"

	"github.com/sidibe/caisse/internal/domain"
)

type countingShopRepo struct {
	scope domain.ShopScope
	calls int
}

func (r *countingShopRepo) GetScope(ctx context.Context, shopID string) (domain.ShopScope, error) {
	r.calls++
	if shopID != r.scope.ShopID {
		return domain.ShopScope{}, domain.ErrShopNotFound
	}
	return r.scope, nil
}

func TestCachedShopRepositoryServesSecondLookupFromCache(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := &countingShopRepo{scope: domain.ShopScope{
		ShopID:   "shop-1",
		AdminID:  "admin-A",
		StaffIDs: []string{"staff-S"},
	}}
	repo := NewCachedShopRepository(inner, NewCache(client))
	ctx := context.Background()

	first, err := repo.GetScope(ctx, "shop-1")
	if err != nil {
		t.Fatalf("first lookup failed: %v", err)
	}

	second, err := repo.GetScope(ctx, "shop-1")
	if err != nil {
		t.Fatalf("second lookup failed: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected one inner lookup, got %d", inner.calls)
	}
	if second.AdminID != first.AdminID || len(second.StaffIDs) != 1 {
		t.Fatalf("cached scope does not match: %+v", second)
	}
}

func TestCachedShopRepositoryPropagatesNotFound(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := &countingShopRepo{scope: domain.ShopScope{ShopID: "shop-1", AdminID: "admin-A"}}
	repo := NewCachedShopRepository(inner, NewCache(client))

	if _, err := repo.GetScope(context.Background(), "shop-9"); err != domain.ErrShopNotFound {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
}
