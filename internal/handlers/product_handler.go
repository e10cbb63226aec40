package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/winshop/winshop/internal/models"
	"github.com/winshop/winshop/internal/services"
	"github.com/winshop/winshop/internal/storage"
)

// ProductHandler handles catalog requests.
type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /api/products (public).
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.productService.ListProducts(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}
	return respondData(c, http.StatusOK, models.ProductsToResponse(products))
}

// CreateProduct handles POST /api/products (admin).
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Corps de requête vide")
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		if isProductValidationError(err) {
			return respondError(c, http.StatusBadRequest, err.Error())
		}
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}

	return respondData(c, http.StatusCreated, product.ToResponse())
}

// UpdateProduct handles PATCH /api/products/:id (admin).
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide")
	}

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Corps de requête vide")
	}

	product, err := h.productService.UpdateProduct(c.Request().Context(), id, &req)
	if err != nil {
		switch {
		case isProductValidationError(err):
			return respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrProductNotFound):
			return respondError(c, http.StatusNotFound, "Produit non trouvé")
		default:
			return respondError(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return respondData(c, http.StatusOK, product.ToResponse())
}

// DeleteProduct handles DELETE /api/products/:id (admin).
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "Identifiant invalide")
	}

	err = h.productService.DeleteProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return respondError(c, http.StatusNotFound, "Produit non trouvé")
		}
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}

	return respondData(c, http.StatusOK, map[string]string{"id": id.String()})
}

func isProductValidationError(err error) bool {
	return errors.Is(err, services.ErrInvalidProduct) ||
		errors.Is(err, services.ErrInvalidCategory) ||
		errors.Is(err, services.ErrInvalidStock)
}
