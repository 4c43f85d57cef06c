package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughstore/internal/domain"
)

func TestAddCartItemMergesSameVariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := seedUser(t, db, "buyer")
	product := seedProduct(t, db, "widget", 10.0, 5)

	first, err := svc.AddItem(context.Background(), AddCartItemInput{
		UserId: user.ID, ProductId: product.ID, Quantity: 2, VariantDetails: "red",
	})
	require.NoError(t, err)

	merged, err := svc.AddItem(context.Background(), AddCartItemInput{
		UserId: user.ID, ProductId: product.ID, Quantity: 3, VariantDetails: "red",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)

	// different variant is a separate line
	other, err := svc.AddItem(context.Background(), AddCartItemInput{
		UserId: user.ID, ProductId: product.ID, Quantity: 1, VariantDetails: "blue",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	items, err := svc.ListItems(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddCartItemRejectsInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := seedUser(t, db, "buyer")
	product := seedProduct(t, db, "widget", 10.0, 5)
	db.Model(&domain.Product{}).Where("id = ?", product.ID).Update("is_active", false)

	_, err := svc.AddItem(context.Background(), AddCartItemInput{
		UserId: user.ID, ProductId: product.ID, Quantity: 1,
	})
	assert.True(t, IsInvalidState(err))

	_, err = svc.AddItem(context.Background(), AddCartItemInput{
		UserId: user.ID, ProductId: 424242, Quantity: 1,
	})
	assert.True(t, IsNotFound(err))

	_, err = svc.AddItem(context.Background(), AddCartItemInput{
		UserId: user.ID, ProductId: product.ID, Quantity: 0,
	})
	assert.True(t, IsInvalidRequest(err))
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := seedUser(t, db, "buyer")
	product := seedProduct(t, db, "widget", 10.0, 5)

	item, err := svc.AddItem(context.Background(), AddCartItemInput{
		UserId: user.ID, ProductId: product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateItemQuantity(context.Background(), item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = svc.UpdateItemQuantity(context.Background(), item.ID, 0)
	assert.True(t, IsInvalidRequest(err))

	require.NoError(t, svc.RemoveItem(context.Background(), item.ID))
	err = svc.RemoveItem(context.Background(), item.ID)
	assert.True(t, IsNotFound(err))
}

func TestClearCartAndPurgeStale(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	product := seedProduct(t, db, "widget", 10.0, 5)

	for _, user := range []*domain.User{alice, bob} {
		_, err := svc.AddItem(context.Background(), AddCartItemInput{
			UserId: user.ID, ProductId: product.ID, Quantity: 1,
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.ClearCart(context.Background(), alice.ID))
	items, err := svc.ListItems(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// age bob's line past the cutoff, then purge
	stale := time.Now().Add(-40 * 24 * time.Hour)
	db.Model(&domain.ShoppingCart{}).Where("user_id = ?", bob.ID).Update("updated_at", stale)

	require.NoError(t, svc.PurgeStale(context.Background(), 30*24*time.Hour))
	items, err = svc.ListItems(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
