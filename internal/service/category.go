package service

import (
	"context"
	"time"

	"github.com/talkincode/toughstore/internal/domain"
	"github.com/talkincode/toughstore/internal/repository"
	"github.com/talkincode/toughstore/pkg/common"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CategoryInput struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Description  string `json:"description"`
	ParentId     *int64 `json:"parent_id,string"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	uow := repository.NewUnitOfWork(s.db)

	exists, err := uow.Categories.Exists(ctx, "name = ?", in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, Conflictf("category with name '%s' already exists", in.Name)
	}
	if in.ParentId != nil {
		parent, err := uow.Categories.GetByID(ctx, *in.ParentId)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, NotFoundf("parent category with id %d not found", *in.ParentId)
		}
	}

	now := time.Now()
	category := &domain.Category{
		ID:           common.UUIDint64(),
		Name:         in.Name,
		Description:  in.Description,
		ParentId:     in.ParentId,
		IsActive:     in.IsActive,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.Categories.Add(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*domain.Category, error) {
	uow := repository.NewUnitOfWork(s.db)

	category, err := uow.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, NotFoundf("category with id %d not found", id)
	}
	if in.Name != category.Name {
		exists, err := uow.Categories.Exists(ctx, "name = ?", in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, Conflictf("category with name '%s' already exists", in.Name)
		}
	}

	category.Name = in.Name
	category.Description = in.Description
	category.ParentId = in.ParentId
	category.IsActive = in.IsActive
	category.DisplayOrder = in.DisplayOrder
	category.UpdatedAt = time.Now()
	if err := uow.Categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory is blocked while any product references the category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	uow := repository.NewUnitOfWork(s.db)

	category, err := uow.Categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return NotFoundf("category with id %d not found", id)
	}

	hasProducts, err := uow.Products.Exists(ctx, "category_id = ?", id)
	if err != nil {
		return err
	}
	if hasProducts {
		return InvalidStatef("cannot delete category that has associated products")
	}
	return uow.Categories.Delete(ctx, category)
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := repository.NewUnitOfWork(s.db).Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, NotFoundf("category with id %d not found", id)
	}
	return category, nil
}

func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	return repository.NewUnitOfWork(s.db).Categories.First(ctx, "name = ?", name)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return repository.NewUnitOfWork(s.db).Categories.GetAll(ctx)
}

// ListChildren returns the direct subcategories of a category.
func (s *CategoryService) ListChildren(ctx context.Context, parentID int64) ([]domain.Category, error) {
	return repository.NewUnitOfWork(s.db).Categories.Find(ctx, "parent_id = ?", parentID)
}

func (s *CategoryService) ProductCount(ctx context.Context, categoryID int64) (int64, error) {
	return repository.NewUnitOfWork(s.db).Products.Count(ctx, "category_id = ?", categoryID)
}
