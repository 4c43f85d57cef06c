package service

import (
	"context"
	"time"

	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/repository"
	"github.com/talkincode/toughstore/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

type AddCartItemInput struct {
	UserId         int64  `json:"user_id,string"`
	ProductId      int64  `json:"product_id,string" validate:"required"`
	Quantity       int    `json:"quantity" validate:"gte=1"`
	VariantDetails string `json:"variant_details"`
}

func (s *CartService) ListItems(ctx context.Context, userID int64) ([]domain.ShoppingCart, error) {
	return repository.NewUnitOfWork(s.db).Carts.Find(ctx, "user_id = ?", userID)
}

// AddItem puts a product line into the user's cart. Adding the same
// product with the same variant again merges into the existing line.
func (s *CartService) AddItem(ctx context.Context, in AddCartItemInput) (*domain.ShoppingCart, error) {
	if in.Quantity < 1 {
		return nil, InvalidRequestf("cart quantity must be at least 1")
	}

	uow := repository.NewUnitOfWork(s.db)
	product, err := uow.Products.GetByID(ctx, in.ProductId)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NotFoundf("product with id %d not found", in.ProductId)
	}
	if !product.IsActive {
		return nil, InvalidStatef("product %s is not active", product.Name)
	}

	now := time.Now()
	existing, err := uow.Carts.First(ctx,
		"user_id = ? AND product_id = ? AND variant_details = ?",
		in.UserId, in.ProductId, in.VariantDetails)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += in.Quantity
		existing.UpdatedAt = now
		if err := uow.Carts.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &domain.ShoppingCart{
		ID:             common.UUIDint64(),
		UserId:         in.UserId,
		ProductId:      in.ProductId,
		Quantity:       in.Quantity,
		VariantDetails: in.VariantDetails,
		AddedDate:      now,
		UpdatedAt:      now,
	}
	if err := uow.Carts.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, cartID int64, quantity int) (*domain.ShoppingCart, error) {
	if quantity < 1 {
		return nil, InvalidRequestf("cart quantity must be at least 1")
	}

	uow := repository.NewUnitOfWork(s.db)
	item, err := uow.Carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, NotFoundf("cart item with id %d not found", cartID)
	}

	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	if err := uow.Carts.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID int64) error {
	uow := repository.NewUnitOfWork(s.db)
	item, err := uow.Carts.GetByID(ctx, cartID)
	if err != nil {
		return err
	}
	if item == nil {
		return NotFoundf("cart item with id %d not found", cartID)
	}
	return uow.Carts.Delete(ctx, item)
}

func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	return repository.NewUnitOfWork(s.db).Carts.DeleteWhere(ctx, "user_id = ?", userID)
}

// PurgeStale removes cart lines untouched for longer than maxAge.
// Called by the daily maintenance job.
func (s *CartService) PurgeStale(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)
	err := repository.NewUnitOfWork(s.db).Carts.DeleteWhere(ctx, "updated_at < ?", cutoff)
	if err != nil {
		return err
	}
	zap.L().Info("stale cart lines purged", zap.Time("cutoff", cutoff))
	return nil
}
