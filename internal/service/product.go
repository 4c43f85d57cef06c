package service

import (
	"context"
	"strings"
	"time"

	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/repository"
	"github.com/talkincode/toughstore/pkg/common"
	"gorm.io/gorm"
)

type ProductService struct {
	db *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

type ProductInput struct {
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Description   string  `json:"description"`
	CategoryId    int64   `json:"category_id,string" validate:"required"`
	BrandId       int64   `json:"brand_id,string" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	IsActive      bool    `json:"is_active"`
	IsFeatured    bool    `json:"is_featured"`
}

// CreateProduct validates the category and brand references and the
// name uniqueness (exact, case sensitive) before inserting.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	uow := repository.NewUnitOfWork(s.db)

	if err := s.checkReferences(ctx, uow, in.CategoryId, in.BrandId); err != nil {
		return nil, err
	}
	exists, err := uow.Products.Exists(ctx, "name = ?", in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflictf("product with name '%s' already exists", in.Name)
	}

	now := time.Now()
	product := &domain.Product{
		ID:            common.UUIDint64(),
		Name:          in.Name,
		Description:   in.Description,
		CategoryId:    in.CategoryId,
		BrandId:       in.BrandId,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		IsActive:      in.IsActive,
		IsFeatured:    in.IsFeatured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uow.Products.Add(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	uow := repository.NewUnitOfWork(s.db)

	product, err := uow.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NotFoundf("product with id %d not found", id)
	}

	if in.CategoryId != product.CategoryId || in.BrandId != product.BrandId {
		if err := s.checkReferences(ctx, uow, in.CategoryId, in.BrandId); err != nil {
			return nil, err
		}
	}
	if in.Name != product.Name {
		exists, err := uow.Products.Exists(ctx, "name = ?", in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, Conflictf("product with name '%s' already exists", in.Name)
		}
	}

	product.Name = in.Name
	product.Description = in.Description
	product.CategoryId = in.CategoryId
	product.BrandId = in.BrandId
	product.Price = in.Price
	product.StockQuantity = in.StockQuantity
	product.IsActive = in.IsActive
	product.IsFeatured = in.IsFeatured
	product.UpdatedAt = time.Now()
	if err := uow.Products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct refuses to remove a product that still appears on any
// order; the order item price snapshot references it.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	uow := repository.NewUnitOfWork(s.db)

	product, err := uow.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return NotFoundf("product with id %d not found", id)
	}

	referenced, err := uow.OrderItems.Exists(ctx, "product_id = ?", id)
	if err != nil {
		return err
	}
	if referenced {
		return InvalidStatef("cannot delete product that has associated orders")
	}
	return uow.Products.Delete(ctx, product)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := repository.NewUnitOfWork(s.db).Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, NotFoundf("product with id %d not found", id)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return repository.NewUnitOfWork(s.db).Products.GetAll(ctx)
}

func (s *ProductService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return repository.NewUnitOfWork(s.db).Products.Find(ctx, "category_id = ? AND is_active = ?", categoryID, true)
}

func (s *ProductService) ListFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return repository.NewUnitOfWork(s.db).Products.Find(ctx, "is_featured = ? AND is_active = ?", true, true)
}

// SearchProducts matches the term against name and description of
// active products. An empty term returns nothing.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	pattern := "%" + term + "%"
	return repository.NewUnitOfWork(s.db).Products.Find(ctx,
		"is_active = ? AND (name LIKE ? OR description LIKE ?)", true, pattern, pattern)
}

// InStock reports whether the product has at least qty units left.
func (s *ProductService) InStock(ctx context.Context, productID int64, qty int) (bool, error) {
	product, err := repository.NewUnitOfWork(s.db).Products.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}
	return product.InStock(qty), nil
}

func (s *ProductService) checkReferences(ctx context.Context, uow *repository.UnitOfWork, categoryID, brandID int64) error {
	category, err := uow.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return NotFoundf("category with id %d not found", categoryID)
	}
	brand, err := uow.Brands.GetByID(ctx, brandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return NotFoundf("brand with id %d not found", brandID)
	}
	return nil
}
