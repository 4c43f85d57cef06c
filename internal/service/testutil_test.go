package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/pkg/common"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// single connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	now := time.Now()
	user := &domain.User{
		ID:        common.UUIDint64(),
		Username:  username,
		Email:     username + "@example.com",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	now := time.Now()
	category := &domain.Category{
		ID:        common.UUIDint64(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedBrand(t *testing.T, db *gorm.DB, name string) *domain.Brand {
	t.Helper()
	now := time.Now()
	brand := &domain.Brand{
		ID:        common.UUIDint64(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(brand).Error)
	return brand
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *domain.Product {
	t.Helper()
	category := seedCategory(t, db, name+" category")
	brand := seedBrand(t, db, name+" brand")
	now := time.Now()
	product := &domain.Product{
		ID:            common.UUIDint64(),
		Name:          name,
		CategoryId:    category.ID,
		BrandId:       brand.ID,
		Price:         price,
		StockQuantity: stock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func reloadProduct(t *testing.T, db *gorm.DB, id int64) *domain.Product {
	t.Helper()
	var product domain.Product
	require.NoError(t, db.First(&product, id).Error)
	return &product
}
