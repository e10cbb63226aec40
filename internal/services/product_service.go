package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/winshop/winshop/internal/models"
	"github.com/winshop/winshop/internal/storage"
)

var (
	ErrInvalidProduct  = errors.New("product name and description are required")
	ErrInvalidCategory = errors.New("unknown product category")
	ErrInvalidStock    = errors.New("stock must not be negative")
)

// ProductService defines the catalog operations exposed to handlers.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductServiceImpl implements ProductService.
type ProductServiceImpl struct {
	productStorage ProductStorage
}

// NewProductService creates a new product service.
func NewProductService(productStorage ProductStorage) *ProductServiceImpl {
	return &ProductServiceImpl{productStorage: productStorage}
}

// CreateProduct adds a catalog entry.
func (s *ProductServiceImpl) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.productStorage.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// ListProducts returns the catalog, newest first.
func (s *ProductServiceImpl) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.productStorage.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpdateProduct replaces the updatable fields of a catalog entry.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.productStorage.Update(ctx, product); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a catalog entry.
func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productStorage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// productFromRequest validates the payload and builds the domain model,
// keeping the legacy image field in sync with the images list.
func productFromRequest(req *models.ProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, ErrInvalidProduct
	}
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Stock < 0 {
		return nil, ErrInvalidStock
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	product := &models.Product{
		Name:        name,
		Description: description,
		Price:       decimal.NewFromFloat(req.Price),
		Currency:    currency,
		Category:    req.Category,
		Image:       req.Image,
		Images:      req.Images,
		Stock:       req.Stock,
		VendorName:  strings.TrimSpace(req.VendorName),
		VendorPhone: strings.TrimSpace(req.VendorPhone),
		VendorEmail: strings.TrimSpace(req.VendorEmail),
	}
	product.SyncImages()
	return product, nil
}
