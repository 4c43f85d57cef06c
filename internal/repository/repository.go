package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Repository is a generic persistence gateway for one entity type,
// bound to a gorm handle. When the owning UnitOfWork is inside a
// transaction the handle is the transaction, so mutations only become
// durable on commit.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// GetByID returns (nil, nil) when the row does not exist. A missing
// row is an expected condition, not an error.
func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "repository: get by id")
	}
	return &entity, nil
}

func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, errors.Wrap(err, "repository: get all")
	}
	return entities, nil
}

// Find returns zero or more rows matching the condition. Result order
// is not guaranteed.
func (r *Repository[T]) Find(ctx context.Context, query string, args ...interface{}) ([]T, error) {
	var entities []T
	tx := r.db.WithContext(ctx)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Find(&entities).Error; err != nil {
		return nil, errors.Wrap(err, "repository: find")
	}
	return entities, nil
}

// First returns the first row matching the condition, or (nil, nil)
// when nothing matches.
func (r *Repository[T]) First(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(query, args...).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "repository: first")
	}
	return &entity, nil
}

func (r *Repository[T]) Add(ctx context.Context, entity *T) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(entity).Error, "repository: add")
}

func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(entity).Error, "repository: update")
}

func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	return errors.Wrap(r.db.WithContext(ctx).Delete(entity).Error, "repository: delete")
}

func (r *Repository[T]) DeleteByID(ctx context.Context, id int64) error {
	return errors.Wrap(r.db.WithContext(ctx).Delete(new(T), id).Error, "repository: delete by id")
}

// DeleteWhere removes every row matching the condition.
func (r *Repository[T]) DeleteWhere(ctx context.Context, query string, args ...interface{}) error {
	return errors.Wrap(r.db.WithContext(ctx).Where(query, args...).Delete(new(T)).Error, "repository: delete where")
}

func (r *Repository[T]) Count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(new(T))
	if query != "" {
		tx = tx.Where(query, args...)
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "repository: count")
	}
	return count, nil
}

func (r *Repository[T]) Exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	count, err := r.Count(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
