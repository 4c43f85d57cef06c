package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/pkg/common"
)

func TestCreateProductValidatesReferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)
	category := seedCategory(t, db, "phones")
	brand := seedBrand(t, db, "acme")

	_, err := svc.CreateProduct(context.Background(), ProductInput{
		Name: "phone", CategoryId: 424242, BrandId: brand.ID, Price: 1,
	})
	assert.True(t, IsNotFound(err))

	_, err = svc.CreateProduct(context.Background(), ProductInput{
		Name: "phone", CategoryId: category.ID, BrandId: 424242, Price: 1,
	})
	assert.True(t, IsNotFound(err))

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name: "phone", CategoryId: category.ID, BrandId: brand.ID,
		Price: 199.99, StockQuantity: 5, IsActive: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	_, err = svc.CreateProduct(context.Background(), ProductInput{
		Name: "phone", CategoryId: category.ID, BrandId: brand.ID, Price: 1,
	})
	assert.True(t, IsConflict(err))
}

func TestUpdateProductRenameConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)
	category := seedCategory(t, db, "phones")
	brand := seedBrand(t, db, "acme")

	first, err := svc.CreateProduct(context.Background(), ProductInput{
		Name: "phone", CategoryId: category.ID, BrandId: brand.ID, Price: 1, IsActive: true,
	})
	require.NoError(t, err)
	second, err := svc.CreateProduct(context.Background(), ProductInput{
		Name: "tablet", CategoryId: category.ID, BrandId: brand.ID, Price: 1, IsActive: true,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(context.Background(), second.ID, ProductInput{
		Name: first.Name, CategoryId: category.ID, BrandId: brand.ID, Price: 1,
	})
	assert.True(t, IsConflict(err))

	updated, err := svc.UpdateProduct(context.Background(), second.ID, ProductInput{
		Name: "tablet pro", CategoryId: category.ID, BrandId: brand.ID,
		Price: 2, StockQuantity: 9, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "tablet pro", updated.Name)
	assert.Equal(t, 9, updated.StockQuantity)
}

func TestDeleteProductBlockedByOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)
	product := seedProduct(t, db, "widget", 10.0, 5)

	require.NoError(t, db.Create(&domain.OrderItem{
		ID:        common.UUIDint64(),
		OrderId:   common.UUIDint64(),
		ProductId: product.ID,
		Quantity:  1,
	}).Error)

	err := svc.DeleteProduct(context.Background(), product.ID)
	assert.True(t, IsInvalidState(err))

	require.NoError(t, db.Where("product_id = ?", product.ID).Delete(&domain.OrderItem{}).Error)
	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))

	_, err = svc.GetProduct(context.Background(), product.ID)
	assert.True(t, IsNotFound(err))
}

func TestSearchProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)
	seedProduct(t, db, "red widget", 10.0, 5)
	seedProduct(t, db, "blue gadget", 10.0, 5)
	inactive := seedProduct(t, db, "red gizmo", 10.0, 5)
	db.Model(&domain.Product{}).Where("id = ?", inactive.ID).Update("is_active", false)

	found, err := svc.SearchProducts(context.Background(), "red")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "red widget", found[0].Name)

	none, err := svc.SearchProducts(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFeaturedAndCategoryListings(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db)
	product := seedProduct(t, db, "widget", 10.0, 5)
	db.Model(&domain.Product{}).Where("id = ?", product.ID).Update("is_featured", true)

	featured, err := svc.ListFeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 1)

	byCategory, err := svc.ListProductsByCategory(context.Background(), product.CategoryId)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)

	ok, err := svc.InStock(context.Background(), product.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.InStock(context.Background(), product.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	root, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "electronics", IsActive: true})
	require.NoError(t, err)
	assert.True(t, root.IsRoot())

	_, err = svc.CreateCategory(context.Background(), CategoryInput{Name: "electronics"})
	assert.True(t, IsConflict(err))

	missing := int64(424242)
	_, err = svc.CreateCategory(context.Background(), CategoryInput{Name: "orphan", ParentId: &missing})
	assert.True(t, IsNotFound(err))

	child, err := svc.CreateCategory(context.Background(), CategoryInput{
		Name: "phones", ParentId: &root.ID, IsActive: true,
	})
	require.NoError(t, err)
	assert.False(t, child.IsRoot())

	children, err := svc.ListChildren(context.Background(), root.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	byName, err := svc.GetCategoryByName(context.Background(), "phones")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, child.ID, byName.ID)
}

func TestDeleteCategoryBlockedByProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	product := seedProduct(t, db, "widget", 10.0, 5)

	err := svc.DeleteCategory(context.Background(), product.CategoryId)
	assert.True(t, IsInvalidState(err))

	count, err := svc.ProductCount(context.Background(), product.CategoryId)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.Delete(&domain.Product{}, product.ID).Error)
	require.NoError(t, svc.DeleteCategory(context.Background(), product.CategoryId))
}

func TestBrandLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewBrandService(db)

	brand, err := svc.CreateBrand(context.Background(), BrandInput{Name: "acme", IsActive: true})
	require.NoError(t, err)

	_, err = svc.CreateBrand(context.Background(), BrandInput{Name: "acme"})
	assert.True(t, IsConflict(err))

	updated, err := svc.UpdateBrand(context.Background(), brand.ID, BrandInput{
		Name: "acme corp", LogoUrl: "https://cdn.example.com/acme.png", IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "acme corp", updated.Name)

	brands, err := svc.ListBrands(context.Background())
	require.NoError(t, err)
	assert.Len(t, brands, 1)
}

func TestDeleteBrandBlockedByProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewBrandService(db)
	product := seedProduct(t, db, "widget", 10.0, 5)

	err := svc.DeleteBrand(context.Background(), product.BrandId)
	assert.True(t, IsInvalidState(err))

	require.NoError(t, db.Delete(&domain.Product{}, product.ID).Error)
	require.NoError(t, svc.DeleteBrand(context.Background(), product.BrandId))
}
