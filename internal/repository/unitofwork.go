package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talkincode/toughstore/internal/domain"
	"gorm.io/gorm"
)

// UnitOfWork aggregates one gateway per entity type over a single gorm
// handle. Begin rebinds every gateway to one transaction so that
// multi-step workflows commit or roll back as a unit.
type UnitOfWork struct {
	base *gorm.DB
	tx   *gorm.DB

	Users      *Repository[domain.User]
	Roles      *Repository[domain.Role]
	UserRoles  *Repository[domain.UserRole]
	Addresses  *Repository[domain.Address]
	Categories *Repository[domain.Category]
	Brands     *Repository[domain.Brand]
	Products   *Repository[domain.Product]
	Carts      *Repository[domain.ShoppingCart]
	Orders     *Repository[domain.Order]
	OrderItems *Repository[domain.OrderItem]
	Settings   *Repository[domain.SysConfig]
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	u := &UnitOfWork{base: db}
	u.bind(db)
	return u
}

func (u *UnitOfWork) bind(db *gorm.DB) {
	u.Users = NewRepository[domain.User](db)
	u.Roles = NewRepository[domain.Role](db)
	u.UserRoles = NewRepository[domain.UserRole](db)
	u.Addresses = NewRepository[domain.Address](db)
	u.Categories = NewRepository[domain.Category](db)
	u.Brands = NewRepository[domain.Brand](db)
	u.Products = NewRepository[domain.Product](db)
	u.Carts = NewRepository[domain.ShoppingCart](db)
	u.Orders = NewRepository[domain.Order](db)
	u.OrderItems = NewRepository[domain.OrderItem](db)
	u.Settings = NewRepository[domain.SysConfig](db)
}

// DB returns the current handle: the transaction when one is open,
// the base connection otherwise.
func (u *UnitOfWork) DB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.base
}

func (u *UnitOfWork) InTx() bool {
	return u.tx != nil
}

// Begin opens a transaction and rebinds all gateways to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return errors.New("unit of work: transaction already open")
	}
	tx := u.base.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "unit of work: begin")
	}
	u.tx = tx
	u.bind(tx)
	return nil
}

// Commit makes all staged mutations durable. If the commit itself
// fails the transaction is rolled back and the underlying error is
// returned.
func (u *UnitOfWork) Commit() error {
	if u.tx == nil {
		return errors.New("unit of work: no open transaction")
	}
	if err := u.tx.Commit().Error; err != nil {
		u.Rollback()
		return errors.Wrap(err, "unit of work: commit")
	}
	u.tx = nil
	u.bind(u.base)
	return nil
}

// Rollback discards the open transaction. Safe to call when no
// transaction is open.
func (u *UnitOfWork) Rollback() {
	if u.tx == nil {
		return
	}
	u.tx.Rollback()
	u.tx = nil
	u.bind(u.base)
}

// Transaction runs fn inside Begin/Commit, rolling back on error or
// panic.
func (u *UnitOfWork) Transaction(ctx context.Context, fn func(u *UnitOfWork) error) error {
	if err := u.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			u.Rollback()
			panic(r)
		}
	}()
	if err := fn(u); err != nil {
		u.Rollback()
		return err
	}
	return u.Commit()
}
