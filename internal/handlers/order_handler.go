package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/winshop/winshop/internal/currency"
	"github.com/winshop/winshop/internal/dashboard"
	"github.com/winshop/winshop/internal/models"
	"github.com/winshop/winshop/internal/services"
	"github.com/winshop/winshop/internal/storage"
)

// OrderHandler handles order-related requests.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /api/orders (public checkout).
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Corps de requête vide")
	}

	orderNumber, err := h.orderService.CreateOrder(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCustomer), errors.Is(err, services.ErrEmptyOrder):
			return respondError(c, http.StatusBadRequest, err.Error())
		default:
			return respondError(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return respondData(c, http.StatusCreated, models.CreateOrderResponse{OrderNumber: orderNumber})
}

// ListOrders handles GET /api/orders (admin).
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}
	return respondData(c, http.StatusOK, models.OrdersToResponse(orders))
}

// Dashboard handles GET /api/orders/stats (admin). Filter criteria come in
// as query parameters; statistics always cover the full snapshot.
func (h *OrderHandler) Dashboard(c echo.Context) error {
	var criteria dashboard.Criteria
	if err := c.Bind(&criteria); err != nil {
		return respondError(c, http.StatusBadRequest, "paramètres invalides")
	}
	unit := currency.ParseUnit(c.QueryParam("currency"))

	data, err := h.orderService.Dashboard(c.Request().Context(), criteria, unit)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}
	return respondData(c, http.StatusOK, data)
}

// UpdateStatus handles PATCH /api/orders/:id (admin).
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "ID invalide")
	}

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Corps de requête vide")
	}

	err = h.orderService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return respondError(c, http.StatusBadRequest, "Statut invalide")
		case errors.Is(err, storage.ErrOrderNotFound):
			return respondError(c, http.StatusNotFound, "Commande non trouvée")
		default:
			return respondError(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return respondOK(c, http.StatusOK)
}

// DeleteOrder handles DELETE /api/orders/:id (admin).
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, http.StatusBadRequest, "ID invalide")
	}

	err = h.orderService.DeleteOrder(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return respondError(c, http.StatusNotFound, "Commande non trouvée")
		}
		return respondError(c, http.StatusInternalServerError, "internal server error")
	}

	return respondOK(c, http.StatusOK)
}
