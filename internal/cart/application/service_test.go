package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/wyfcoding/artsfoundation/internal/cart/infrastructure/memory"
	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	catalogmemory "github.com/wyfcoding/artsfoundation/internal/catalog/infrastructure/memory"
)

func newTestService() *CartService {
	return NewCartService(cartmemory.NewCartRepository(), catalogmemory.NewCatalogRepository())
}

func TestGetReturnsEmptyCartForUnknownSession(t *testing.T) {
	svc := newTestService()

	cart, err := svc.Get(context.Background(), "unknown")

	require.NoError(t, err)
	assert.True(t, cart.Empty())
	assert.Equal(t, "unknown", cart.SessionID)
}

func TestAddItemUsesCatalogPrice(t *testing.T) {
	svc := newTestService()

	cart, err := svc.AddItem(context.Background(), "sess-1", 2)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Ocean Waves Print", cart.Items[0].Title)
	assert.True(t, decimal.NewFromInt(75).Equal(cart.Items[0].UnitPrice))
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := newTestService()

	_, err := svc.AddItem(context.Background(), "sess-1", 999)

	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}

func TestCartPersistsAcrossCalls(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 6)
	require.NoError(t, err)

	cart, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.True(t, decimal.NewFromInt(195).Equal(cart.Total()))
}

func TestClearRemovesCart(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess-1"))

	cart, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}
