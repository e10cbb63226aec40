package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/winshop/winshop/internal/models"
)

// OrderStorage defines the order persistence operations used by services.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductStorage defines the catalog persistence operations used by
// services.
type ProductStorage interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
