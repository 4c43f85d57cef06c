package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
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
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func newBrand(name string) *domain.Brand {
	now := time.Now()
	return &domain.Brand{
		ID:        common.UUIDint64(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepositoryGetByIDMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[domain.Brand](db)

	brand, err := repo.GetByID(context.Background(), 424242)
	require.NoError(t, err)
	assert.Nil(t, brand)

	first, err := repo.First(context.Background(), "name = ?", "nothing")
	require.NoError(t, err)
	assert.Nil(t, first)
}

func TestRepositoryCrud(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[domain.Brand](db)
	ctx := context.Background()

	brand := newBrand("acme")
	require.NoError(t, repo.Add(ctx, brand))

	got, err := repo.GetByID(ctx, brand.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "acme", got.Name)

	got.Name = "acme corp"
	require.NoError(t, repo.Update(ctx, got))

	exists, err := repo.Exists(ctx, "name = ?", "acme corp")
	require.NoError(t, err)
	assert.True(t, exists)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	count, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.DeleteByID(ctx, brand.ID))
	count, err = repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepositoryDeleteWhere(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[domain.Brand](db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, newBrand("one")))
	require.NoError(t, repo.Add(ctx, newBrand("two")))
	require.NoError(t, repo.Add(ctx, newBrand("three")))

	require.NoError(t, repo.DeleteWhere(ctx, "name LIKE ?", "t%"))
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "one", all[0].Name)
}

func TestUnitOfWorkTransactionRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := uow.Transaction(ctx, func(tx *UnitOfWork) error {
		if err := tx.Brands.Add(ctx, newBrand("phantom")); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, uow.InTx())

	count, err := uow.Brands.Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWorkTransactionCommits(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	err := uow.Transaction(ctx, func(tx *UnitOfWork) error {
		assert.True(t, tx.InTx())
		return tx.Brands.Add(ctx, newBrand("kept"))
	})
	require.NoError(t, err)
	assert.False(t, uow.InTx())

	count, err := uow.Brands.Count(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnitOfWorkNestedBeginFails(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	uow.Rollback()
	assert.False(t, uow.InTx())

	// rollback without a transaction is a no-op
	uow.Rollback()
	assert.Error(t, uow.Commit())
}

func TestUnitOfWorkStagedUntilCommit(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Brands.Add(ctx, newBrand("staged")))
	uow.Rollback()

	outside := NewUnitOfWork(db)
	count, err := outside.Brands.Count(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}
