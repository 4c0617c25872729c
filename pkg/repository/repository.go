package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the generic persistence surface shared by every table.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T) ([]T, error)
	FindOne(ctx context.Context, query *T) (*T, error)
	Create(ctx context.Context, resource *T) error
	BatchCreate(ctx context.Context, resources []T) error
	Count(ctx context.Context, query *T) (int64, error)
}
