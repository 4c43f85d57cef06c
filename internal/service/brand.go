package service

import (
	"context"
	"time"

	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/repository"
	"github.com/talkincode/toughstore/pkg/common"
	"gorm.io/gorm"
)

type BrandService struct {
	db *gorm.DB
}

func NewBrandService(db *gorm.DB) *BrandService {
	return &BrandService{db: db}
}

type BrandInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	LogoUrl     string `json:"logo_url"`
	IsActive    bool   `json:"is_active"`
}

func (s *BrandService) CreateBrand(ctx context.Context, in BrandInput) (*domain.Brand, error) {
	uow := repository.NewUnitOfWork(s.db)

	exists, err := uow.Brands.Exists(ctx, "name = ?", in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflictf("brand with name '%s' already exists", in.Name)
	}

	now := time.Now()
	brand := &domain.Brand{
		ID:          common.UUIDint64(),
		Name:        in.Name,
		Description: in.Description,
		LogoUrl:     in.LogoUrl,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.Brands.Add(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) UpdateBrand(ctx context.Context, id int64, in BrandInput) (*domain.Brand, error) {
	uow := repository.NewUnitOfWork(s.db)

	brand, err := uow.Brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, NotFoundf("brand with id %d not found", id)
	}
	if in.Name != brand.Name {
		exists, err := uow.Brands.Exists(ctx, "name = ?", in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, Conflictf("brand with name '%s' already exists", in.Name)
		}
	}

	brand.Name = in.Name
	brand.Description = in.Description
	brand.LogoUrl = in.LogoUrl
	brand.IsActive = in.IsActive
	brand.UpdatedAt = time.Now()
	if err := uow.Brands.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// DeleteBrand is blocked while any product references the brand.
func (s *BrandService) DeleteBrand(ctx context.Context, id int64) error {
	uow := repository.NewUnitOfWork(s.db)

	brand, err := uow.Brands.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return NotFoundf("brand with id %d not found", id)
	}

	hasProducts, err := uow.Products.Exists(ctx, "brand_id = ?", id)
	if err != nil {
		return err
	}
	if hasProducts {
		return InvalidStatef("cannot delete brand that has associated products")
	}
	return uow.Brands.Delete(ctx, brand)
}

func (s *BrandService) GetBrand(ctx context.Context, id int64) (*domain.Brand, error) {
	brand, err := repository.NewUnitOfWork(s.db).Brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, NotFoundf("brand with id %d not found", id)
	}
	return brand, nil
}

func (s *BrandService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return repository.NewUnitOfWork(s.db).Brands.GetAll(ctx)
}
